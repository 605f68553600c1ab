package logging

// Field names used in structured log output.
const (
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldParser     = "parser"
	FieldEncoding   = "encoding"
	FieldDelimiter  = "delimiter"
	FieldHeaderLine = "header_line"
	FieldLine       = "line"
	FieldColumns    = "columns"
	FieldCount      = "count"
	FieldConverted  = "converted"
	FieldSkipped    = "skipped"
)
