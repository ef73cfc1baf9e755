package cmd

const (
	ExitCodeUnknownError       = 1
	ExitCodeInvalidArguments   = 2
	ExitCodeInputNotFound      = 3
	ExitCodeNotAnImage         = 4
	ExitCodeUnsupportedFormat  = 5
	ExitCodeTransformError     = 6
	ExitCodeOutputError        = 7
	ExitCodeInvalidRecipe      = 8
	ExitCodeUnsupportedPalette = 9
)
