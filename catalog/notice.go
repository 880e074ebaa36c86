package catalog

// Level is the severity of a notice.
type Level int

const (
	Info Level = iota
	Error
)

// Notice is a transient message for the user.
type Notice struct {
	Level Level
	Text  string
}
