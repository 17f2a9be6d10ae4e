package segregator

import (
	"fmt"
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
)

const systemPrompt = `You are an expert PLC control system architect specializing in stage-based control flow design.

Your task is to analyze user-provided control logic and segregate it into clear operational stages.

MANDATORY STAGE STRUCTURE:
- Stage 0: Idle Stage (ALWAYS REQUIRED)
  Purpose: Safe baseline state, all outputs OFF, system ready

- Stage 1: Safety Check Stage (ALWAYS REQUIRED)
  Purpose: Verify interlocks, emergency conditions, system readiness

- Stage 2+: Process Stages (AS NEEDED)
  Purpose: Actual control operations, sequencing, automation

CRITICAL RULES:
1. NEVER add logic the user didn't provide
2. NEVER remove logic the user provided
3. NEVER change the meaning of user's logic
4. Extract and map user's exact words to appropriate stages
5. If user didn't mention idle/safety, create minimal placeholder stages
6. Each stage must have ONLY the logic relevant to it

OUTPUT FORMAT:
- JSON structure with stages array
- Each stage has: stage_number, stage_name, stage_type, description, original_logic
- Dependencies array showing stage transitions`

// retrievalQuery is the fixed query string used to fetch manual context
// for the segregation prompt (spec.md §4.6 step 1).
const retrievalQuery = "PLC stage programming control flow stages"

// retrievalTopK is the chunk count requested alongside retrievalQuery.
const retrievalTopK = 2

func buildSystemMessage(manualContext string) string {
	return fmt.Sprintf("%s\n\n=== MANUAL CONTEXT ===\n%s", systemPrompt, manualContext)
}

func buildUserMessage(logic string, features domain.FlowFeatures) string {
	actuators := features.Actuators
	if len(actuators) > 5 {
		actuators = actuators[:5]
	}

	return fmt.Sprintf(`Analyze this control logic and segregate it into stages.

CONTROL LOGIC:
%s

ANALYSIS SUMMARY:
- Word count: %d
- Complexity: %d
- Has emergency logic: %t
- Has safety logic: %t
- Detected actuators: %s

Provide the stage segregation in the following JSON format:
{
  "stages": [
    {
      "stage_number": 0,
      "stage_name": "Idle Stage",
      "stage_type": "idle",
      "description": "Brief description",
      "original_logic": "Exact logic from user input for this stage"
    },
    ...
  ],
  "dependencies": [
    {
      "from_stage": 0,
      "to_stage": 1,
      "condition": "Description of transition condition"
    }
  ]
}

CRITICAL RULES:
1. Stage 0 MUST be Idle Stage
2. Stage 1 MUST be Safety Check Stage
3. Extract ONLY the logic user provided - do NOT add new logic
4. Preserve exact user wording in original_logic
5. Each stage must have clear purpose
`, logic, features.WordCount, features.ComplexityScore, features.HasEmergency, features.HasSafety, strings.Join(actuators, ", "))
}
