package log

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints short prefixed status lines for the person at the
// terminal, mirroring each one to zerolog
type UserLogger struct {
	log zerolog.Logger
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📊 LogStateChange logs a change to the versioning record or destination
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 💡 LogHint logs what to do next
func (u *UserLogger) LogHint(description string) {
	u.printer(pterm.Info, "💡").Println(description)
	u.log.Debug().Msg(description)
}

// ✨ LogCreated logs a newly created version or record
func (u *UserLogger) LogCreated(description string) {
	u.printer(pterm.Success, "✨").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}

	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

// 📋 LogTable renders rows with the first row as header
func (u *UserLogger) LogTable(rows [][]string) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(rows).
		WithWriter(u.out).
		Render()
}
