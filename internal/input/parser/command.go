package parser

// CommandRunner executes a command string resolved from a binding.
// count is the numeric prefix entered before the chain, 0 when none.
type CommandRunner interface {
	Run(cmd string, count int) error
}

// RunnerFunc adapts a function to the CommandRunner interface.
type RunnerFunc func(cmd string, count int) error

// Run calls the wrapped function.
func (f RunnerFunc) Run(cmd string, count int) error {
	return f(cmd, count)
}

// MessageSink receives user-facing messages. Command failures are
// reported here and never abort input handling.
type MessageSink interface {
	Error(msg string)
}

// nopSink discards messages.
type nopSink struct{}

func (nopSink) Error(string) {}

// CommandParser resolves key chains to commands and runs them. Prompt
// and yes/no modes use it with the count prefix disabled.
type CommandParser struct {
	*BaseParser

	runner CommandRunner
	sink   MessageSink
}

// NewCommandParser creates a parser that dispatches exact matches to
// runner. A nil sink discards error messages.
func NewCommandParser(cfg Config, runner CommandRunner, sink MessageSink) *CommandParser {
	if sink == nil {
		sink = nopSink{}
	}
	p := &CommandParser{
		BaseParser: NewBase(cfg),
		runner:     runner,
		sink:       sink,
	}
	p.SetExecuteFunc(p.runCommand)
	return p
}

// NewPromptParser creates a command parser for prompt modes. Prompt
// modes never accept a count prefix.
func NewPromptParser(cfg Config, runner CommandRunner, sink MessageSink) *CommandParser {
	cfg.SupportsCount = false
	return NewCommandParser(cfg, runner, sink)
}

func (p *CommandParser) runCommand(cmd string, count int) {
	if p.runner == nil {
		return
	}
	if err := p.runner.Run(cmd, count); err != nil {
		p.sink.Error(err.Error())
	}
}
