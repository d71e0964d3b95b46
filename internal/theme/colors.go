package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Shift state colors
const (
	ColorCompleted Color = "8" // Gray - completed
	ColorIdle      Color = "3" // Yellow - no shift
	ColorOnBreak   Color = "1" // Red - on break
	ColorWorking   Color = "2" // Green - working
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
)

// Table colors
const (
	ColorTableBorder Color = "238"
	ColorTableHeader Color = "141" // Purple
)
