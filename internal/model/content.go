package model

// Encoding names the text encoding a file was decoded with.
type Encoding string

const (
	// EncodingUTF8 is the primary encoding.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingLatin1 is the permissive single-byte fallback.
	EncodingLatin1 Encoding = "latin-1"
)

// FileContent is the full decoded text of the input file.
// It is owned by one pipeline run and never mutated.
type FileContent struct {
	Path     Path
	Text     string
	Lines    int
	Size     int64
	Encoding Encoding
}

// Preview is the bounded excerpt shown to the user after reading.
type Preview struct {
	Lines     []string
	Truncated bool
}

// Strategy names a transform strategy.
type Strategy string

const (
	// StrategyUppercase uppercases every character.
	StrategyUppercase Strategy = "uppercase"
	// StrategyLineNumbers prefixes every line with its 1-based number.
	StrategyLineNumbers Strategy = "line-numbers"
	// StrategyNumberedUpper prefixes "Line N: " and uppercases the line.
	StrategyNumberedUpper Strategy = "numbered-upper"
)

// TransformResult is the text derived from a FileContent.
type TransformResult struct {
	Strategy Strategy
	Text     string
	Lines    int
}

// Summary reports a completed run.
type Summary struct {
	InputPath    Path
	OutputPath   Path
	Strategy     Strategy
	Encoding     Encoding
	InputLines   int
	OutputLines  int
	BytesWritten int
}
