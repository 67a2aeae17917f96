package tui

// Color constants for the motofuel TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1F1A12" // Dark amber
	ColorBorder         = "#44403C" // Warm grey

	// Text Colors
	ColorPrimaryText   = "#F5F5F4" // Field labels, user input, titles
	ColorSecondaryText = "#B8B2A7"
	ColorDisabledText  = "#78716C"
	ColorPlaceholder   = "#B8B2A7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (fuel orange)
	ColorAccentMain   = "#EA580C" // Logo, active borders
	ColorAccentBright = "#FB923C" // Highlights, current step

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
	ColorInfo    = "#38BDF8"
)
