package llmgateway

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/plcforge/plcforge/internal/domain"
)

// classifyErr maps a gRPC transport error to one of the gateway's four
// failure kinds. An error that carries no gRPC status maps to Transport;
// a status code not listed below maps to BadResponse.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return domain.NewLLMError(domain.LLMTransport, err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return domain.NewLLMError(domain.LLMUnauthorized, err)
	case codes.ResourceExhausted:
		return domain.NewLLMError(domain.LLMRateLimited, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Aborted:
		return domain.NewLLMError(domain.LLMTransport, err)
	default:
		return domain.NewLLMError(domain.LLMBadResponse, err)
	}
}

var errNoCandidates = errors.New("llmgateway: response had no candidates")
