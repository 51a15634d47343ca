package operation

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/copyver/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind_path_and_cause",
			err:  &Error{Kind: KindSourceNotFound, Path: "/data/a.txt", Err: fs.ErrNotExist},
			want: "source not found: /data/a.txt: file does not exist",
		},
		{
			name: "kind_only",
			err:  &Error{Kind: KindDestinationUnwritable},
			want: "destination unwritable",
		},
		{
			name: "cause_already_names_kind",
			err:  &Error{Kind: KindConfigNotFound, Path: "/etc/config.json", Err: errors.Errorf("%w: /etc/config.json", config.ErrNotFound)},
			want: "config not found: /etc/config.json",
		},
		{
			name: "incomplete_uses_validation_message",
			err:  &Error{Kind: KindConfigIncomplete, Err: (&config.Config{SourceDirectory: "/d", SourceFileName: "a"}).Validate()},
			want: "config incomplete: ruta_destino required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := errors.Errorf("running: %w", &Error{Kind: KindSourceNotFound, Path: "/x", Err: fs.ErrNotExist})

	assert.True(t, errors.Is(err, ErrSourceNotFound), "should match its kind sentinel")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "should match the wrapped cause")
	assert.False(t, errors.Is(err, ErrDestinationUnwritable), "should not match other kinds")
	assert.False(t, errors.Is(&Error{Kind: KindUnknown}, ErrSourceNotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain_error", err: errors.New("boom"), want: KindUnknown},
		{name: "typed_error", err: &Error{Kind: KindDestinationUnwritable}, want: KindDestinationUnwritable},
		{name: "wrapped_typed_error", err: errors.Errorf("outer: %w", &Error{Kind: KindConfigIncomplete}), want: KindConfigIncomplete},
		{name: "bare_config_sentinel", err: errors.Errorf("%w: /c.json", config.ErrNotFound), want: KindConfigNotFound},
		{name: "bare_source_sentinel", err: ErrSourceNotFound, want: KindSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "config not found", KindConfigNotFound.String())
	assert.Equal(t, "config incomplete", KindConfigIncomplete.String())
	assert.Equal(t, "source not found", KindSourceNotFound.String())
	assert.Equal(t, "destination unwritable", KindDestinationUnwritable.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
