// Package codeparser implements the Code Parser (C10): transforms the
// Code Generator's raw text into typed GeneratedCode artifacts. It is a
// regex-delimited, state-machine-driven parser in the style of
// react_parser.go, tolerant of missing sections and defensive about
// malformed rows rather than erroring.
package codeparser

import (
	"regexp"
	"strings"

	"github.com/plcforge/plcforge/internal/domain"
)

var (
	numberedPrefix = `(?:\d+\)\s*)?`

	globalTableHeader = regexp.MustCompile(`(?i)^\s*` + numberedPrefix + `GLOBAL LABEL TABLE\s*$`)
	programBlockLine  = regexp.MustCompile(`(?i)^\s*` + numberedPrefix + `PROGRAM BLOCK\s*$`)
	functionLine      = regexp.MustCompile(`(?i)^\s*` + numberedPrefix + `FUNCTION\s*$`)
	functionBlockLine = regexp.MustCompile(`(?i)^\s*` + numberedPrefix + `FUNCTION BLOCK\s*$`)

	nameField       = regexp.MustCompile(`(?i)Program Name:\s*(.+)`)
	execField       = regexp.MustCompile(`(?i)Execution Type:\s*(.+)`)
	funcNameField   = regexp.MustCompile(`(?i)Function Name:\s*(.+)`)
	resultField     = regexp.MustCompile(`(?i)Result Type:\s*(.+)`)
	fbNameField     = regexp.MustCompile(`(?i)Function Block Name:\s*(.+)`)
	fbTypeField     = regexp.MustCompile(`(?i)Function Block Type:\s*(.+)`)
	withEnField     = regexp.MustCompile(`(?i)With EN or Without EN:\s*(.+)`)
	localTableLine  = regexp.MustCompile(`(?i)LOCAL LABEL TABLE`)
	codeHeaderLine  = regexp.MustCompile(`(?i)^\s*STRUCTURED TEXT CODE:?\s*$`)
	codeHeaderInline = regexp.MustCompile(`(?i)STRUCTURED TEXT CODE:\s*`)

	headerKeywords = []string{"label name", "data type", "class", "initial value", "constant", "english"}
	labelRowBadFirstCell = []string{"label name", "name", "column", "label"}
)

// Parse scans the Code Generator's raw output into global labels, program
// blocks, functions, and function blocks. stageNumber is the caller's own
// stage context (not re-derived from the model's free-text "Stage:" field,
// which is metadata only).
func Parse(text string, stageNumber int) domain.GeneratedCode {
	result := domain.GeneratedCode{}

	blocks := splitTopLevelBlocks(text)

	if blocks.global != "" {
		result.GlobalLabels = parseLabelTable(blocks.global)
	}
	for _, content := range blocks.programs {
		if pb, ok := parseProgramBlock(content, stageNumber); ok {
			result.ProgramBlocks = append(result.ProgramBlocks, pb)
		}
	}
	for _, content := range blocks.functions {
		if fn, ok := parseFunction(content, stageNumber); ok {
			result.Functions = append(result.Functions, fn)
		}
	}
	for _, content := range blocks.functionBlocks {
		if fb, ok := parseFunctionBlock(content, stageNumber); ok {
			result.FunctionBlocks = append(result.FunctionBlocks, fb)
		}
	}

	// Legacy shape: mirror the first program block's locals/body to the
	// top-level fields for callers that predate multi-block support.
	if len(result.ProgramBlocks) > 0 {
		result.LocalLabels = result.ProgramBlocks[0].LocalLabels
		result.ProgramBody = result.ProgramBlocks[0].Code
		result.ProgramName = result.ProgramBlocks[0].Name
		result.ExecutionType = result.ProgramBlocks[0].ExecutionType
	}

	return result
}

type splitResult struct {
	global         string
	programs       []string
	functions      []string
	functionBlocks []string
}

// splitTopLevelBlocks scans the document line by line with an explicit
// current-section state, capturing each top-level block's body until the
// next top-level header or end-of-input.
func splitTopLevelBlocks(text string) splitResult {
	var out splitResult

	type kind int
	const (
		kindNone kind = iota
		kindGlobal
		kindProgram
		kindFunction
		kindFunctionBlock
	)

	lines := strings.Split(text, "\n")
	current := kindNone
	var buf []string

	flush := func() {
		if len(buf) == 0 && current == kindNone {
			return
		}
		content := strings.Join(buf, "\n")
		switch current {
		case kindGlobal:
			out.global = content
		case kindProgram:
			out.programs = append(out.programs, content)
		case kindFunction:
			out.functions = append(out.functions, content)
		case kindFunctionBlock:
			out.functionBlocks = append(out.functionBlocks, content)
		}
		buf = nil
	}

	for _, line := range lines {
		switch {
		// Line-exact matching: a header line is the keyword alone (plus
		// an optional numbered prefix), never a metadata line like
		// "Function Name:" that merely contains the keyword as a
		// substring. Decorative section dividers such as the plural
		// "2) PROGRAM BLOCKS"/"3) FUNCTIONS" headings don't match either,
		// so they fall through as harmless clutter absorbed into
		// whichever section is still open (label-table and field
		// extraction only look at pipe rows / "Key:" lines, so stray
		// text never corrupts them).
		case globalTableHeader.MatchString(line):
			flush()
			current = kindGlobal
			continue
		case functionBlockLine.MatchString(line):
			flush()
			current = kindFunctionBlock
			continue
		case programBlockLine.MatchString(line):
			flush()
			current = kindProgram
			continue
		case functionLine.MatchString(line):
			flush()
			current = kindFunction
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return out
}

func parseProgramBlock(content string, stageNumber int) (domain.ProgramBlock, bool) {
	pb := domain.ProgramBlock{Stage: stageNumber, ExecutionType: domain.ExecScan}

	if m := nameField.FindStringSubmatch(content); m != nil {
		pb.Name = strings.TrimSpace(m[1])
	}
	if m := execField.FindStringSubmatch(content); m != nil {
		pb.ExecutionType = domain.ExecutionType(strings.TrimSpace(m[1]))
	}
	pb.LocalLabels = parseLocalLabels(content)
	pb.Code = extractCode(content)

	if pb.Name == "" {
		return domain.ProgramBlock{}, false
	}
	return pb, true
}

func parseFunction(content string, stageNumber int) (domain.Function, bool) {
	fn := domain.Function{Stage: stageNumber, ResultType: "BOOL"}

	if m := funcNameField.FindStringSubmatch(content); m != nil {
		fn.Name = strings.TrimSpace(m[1])
	}
	if m := resultField.FindStringSubmatch(content); m != nil {
		fn.ResultType = strings.TrimSpace(m[1])
	}
	if m := withEnField.FindStringSubmatch(content); m != nil {
		withEn := strings.Contains(strings.ToLower(m[1]), "with en")
		fn.WithEN = &withEn
	}
	fn.LocalLabels = parseLocalLabels(content)
	fn.Code = extractCode(content)

	if fn.Name == "" {
		return domain.Function{}, false
	}
	return fn, true
}

func parseFunctionBlock(content string, stageNumber int) (domain.FunctionBlock, bool) {
	fb := domain.FunctionBlock{Stage: stageNumber, FBType: "Subroutine Type"}

	if m := fbNameField.FindStringSubmatch(content); m != nil {
		fb.Name = strings.TrimSpace(m[1])
	}
	if m := fbTypeField.FindStringSubmatch(content); m != nil {
		fb.FBType = strings.TrimSpace(m[1])
	}
	if m := withEnField.FindStringSubmatch(content); m != nil {
		withEn := strings.Contains(strings.ToLower(m[1]), "with en")
		fb.WithEN = &withEn
	}
	fb.LocalLabels = parseLocalLabels(content)
	fb.Code = extractCode(content)

	if fb.Name == "" {
		return domain.FunctionBlock{}, false
	}
	return fb, true
}

// parseLocalLabels extracts the LOCAL LABEL TABLE section, which runs
// from its header line to the start of STRUCTURED TEXT CODE (or
// end-of-block, if no code header is present).
func parseLocalLabels(content string) []domain.Label {
	loc := localTableLine.FindStringIndex(content)
	if loc == nil {
		return nil
	}
	rest := content[loc[1]:]
	if idx := codeHeaderInline.FindStringIndex(rest); idx != nil {
		rest = rest[:idx[0]]
	} else if idx := indexOfCodeHeaderLine(rest); idx >= 0 {
		rest = rest[:idx]
	}
	return parseLabelTable(rest)
}

func indexOfCodeHeaderLine(text string) int {
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if codeHeaderLine.MatchString(line) {
			return offset
		}
		offset += len(line) + 1
	}
	return -1
}

// extractCode pulls the STRUCTURED TEXT CODE section and applies the
// cleanup rules: drop the header line itself, drop table-header rows that
// leaked past the label table, and collapse the blank line that follows a
// dropped header.
func extractCode(content string) string {
	loc := codeHeaderInline.FindStringIndex(content)
	var codeText string
	if loc != nil {
		codeText = content[loc[1]:]
	} else {
		idx := indexOfCodeHeaderLine(content)
		if idx < 0 {
			return ""
		}
		// Skip past the header line itself.
		rest := content[idx:]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return ""
		}
		codeText = rest[nl+1:]
	}

	lines := strings.Split(strings.TrimSpace(codeText), "\n")
	var cleaned []string
	skipNextEmpty := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			if !skipNextEmpty {
				cleaned = append(cleaned, line)
			}
			skipNextEmpty = false
			continue
		}

		if strings.Contains(line, "|") && containsAnyFold(line, headerKeywords) {
			skipNextEmpty = true
			continue
		}

		lower := strings.ToLower(stripped)
		if lower == "structured text code:" || lower == "structured text code" {
			skipNextEmpty = true
			continue
		}

		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

func containsAnyFold(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseLabelTable parses pipe-delimited rows into Labels, skipping
// separator/blank lines and header rows.
func parseLabelTable(tableText string) []domain.Label {
	var labels []domain.Label

	for _, raw := range strings.Split(tableText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
			continue
		}
		if !strings.Contains(line, "|") {
			continue
		}

		var cells []string
		for _, part := range strings.Split(line, "|") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				cells = append(cells, trimmed)
			}
		}
		if len(cells) < 3 {
			continue
		}
		if containsAnyFold(cells[0], labelRowBadFirstCell) {
			continue
		}

		label := domain.Label{Name: cells[0], DataType: cell(cells, 1)}
		if class := cell(cells, 2); class != "" {
			label.Class = domain.LabelClass(class)
		}

		// Global rows carry a Device Name column before Initial Value;
		// local rows do not. Disambiguate by column count: >=7 cells
		// implies the global shape (through Remark), otherwise local.
		if len(cells) >= 7 {
			label.Device = cell(cells, 3)
			label.InitialValue = cell(cells, 4)
			label.Constant = isTruthy(cell(cells, 5))
			label.Comment = cell(cells, 6)
			label.Remark = cell(cells, 7)
		} else {
			label.InitialValue = cell(cells, 3)
			label.Constant = isTruthy(cell(cells, 4))
			if len(cells) > 6 {
				label.Comment = cells[6]
			} else if len(cells) > 5 && !isBoolToken(cells[5]) {
				label.Comment = cells[5]
			}
		}

		if label.Name == "" || label.Name == "-" || strings.EqualFold(label.Name, "N/A") {
			continue
		}
		labels = append(labels, label)
	}

	return labels
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func isBoolToken(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "no", "true", "false":
		return true
	default:
		return false
	}
}
