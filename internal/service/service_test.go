package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/modelboiler/internal/clipboard"
	"github.com/Alia5/modelboiler/internal/codegen/generator"
	"github.com/Alia5/modelboiler/internal/codegen/generator/swift"
	"github.com/Alia5/modelboiler/internal/codegen/scanner"
	"github.com/Alia5/modelboiler/internal/log"
	"github.com/Alia5/modelboiler/internal/notify"
)

type recordingNotifier struct {
	got []notify.Notification
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.got = append(r.got, n)
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const userSource = `struct User {
    let userID: Int
    var name: String?
}`

const userCode = `enum CodingKeys: String, CodingKey {
    case userID = "user_id"
    case name = "name"
}

public func encode(to encoder: Encoder) throws {
    var container = encoder.container(keyedBy: CodingKeys.self)
    try container.encode(userID, forKey: .userID)
    try container.encode(name, forKey: .name)
}

public init(from decoder: Decoder) throws {
    let container = try decoder.container(keyedBy: CodingKeys.self)
    userID = try container.decode(Int.self, forKey: .userID)
    name = try container.decodeIfPresent(String.self, forKey: .name)
}
`

func TestRunSuccess(t *testing.T) {
	cb := clipboard.NewMemory(userSource)
	rec := &recordingNotifier{}
	var raw bytes.Buffer

	svc := New(discardLogger(), log.NewRaw(&raw), Config{
		Clipboard: cb,
		Notifier:  rec,
		Settings:  generator.Settings{MapSnakeCase: true},
	})
	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, userCode, cb.Text())
	assert.Equal(t, []notify.Notification{{
		Title:   "Code generated",
		Message: "The code has been copied to the clipboard.",
		Success: true,
	}}, rec.got)

	assert.Contains(t, raw.String(), "<- input")
	assert.Contains(t, raw.String(), "-> output")
	assert.Contains(t, raw.String(), `case userID = "user_id"`)
}

func TestRunSeparateDestination(t *testing.T) {
	var out bytes.Buffer
	rec := &recordingNotifier{}
	svc := New(discardLogger(), nil, Config{
		Clipboard:   clipboard.Pair{In: clipboard.NewMemory("struct P {\n  var x = 1\n}"), Out: clipboard.Stream{Out: &out}},
		Notifier:    rec,
		Destination: "model.swift",
		Settings:    generator.Settings{OnlyCreateInitializer: true},
	})
	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, "public init(from decoder: Decoder) throws {\n"+
		"    let container = try decoder.container(keyedBy: CodingKeys.self)\n"+
		"    x = try container.decode(Int.self, forKey: .x)\n"+
		"}\n", out.String())
	require.Len(t, rec.got, 1)
	assert.Equal(t, "The code has been copied to model.swift.", rec.got[0].Message)
}

func TestRunNoText(t *testing.T) {
	for _, input := range []string{"", "  \n\t"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			cb := clipboard.NewMemory(input)
			rec := &recordingNotifier{}
			svc := New(discardLogger(), nil, Config{Clipboard: cb, Notifier: rec})

			err := svc.Run(context.Background())
			assert.ErrorIs(t, err, ErrNoText)
			assert.Equal(t, 0, cb.Writes())
			assert.Equal(t, []notify.Notification{{
				Title:   "No text selected",
				Message: "Nothing was found in the clipboard.",
			}}, rec.got)
		})
	}
}

func TestRunNoTextNamesSource(t *testing.T) {
	rec := &recordingNotifier{}
	svc := New(discardLogger(), nil, Config{
		Clipboard: clipboard.Pair{In: clipboard.NewMemory(""), Out: clipboard.NewMemory("")},
		Notifier:  rec,
		Source:    "model.swift",
	})

	assert.ErrorIs(t, svc.Run(context.Background()), ErrNoText)
	require.Len(t, rec.got, 1)
	assert.Equal(t, "Nothing was found in model.swift.", rec.got[0].Message)
}

func TestRunReadFailure(t *testing.T) {
	rec := &recordingNotifier{}
	svc := New(discardLogger(), nil, Config{Clipboard: clipboard.Stream{}, Notifier: rec})

	err := svc.Run(context.Background())
	assert.ErrorIs(t, err, clipboard.ErrUnavailable)
	require.Len(t, rec.got, 1)
	assert.Equal(t, "No text selected", rec.got[0].Title)
	assert.False(t, rec.got[0].Success)
}

func TestRunGenerationFailureLeavesClipboard(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  any
		message string
	}{
		{
			name:    "type inference",
			src:     "struct A {\n  var x = banana\n}",
			target:  new(*swift.TypeInferenceError),
			message: `Error: could not generate type for A.x (line 2) from value "banana"`,
		},
		{
			name:    "duplicate",
			src:     "struct A {\n  let x: Int\n  let x: Int\n}",
			target:  new(*swift.DuplicatePropertyError),
			message: "Error: duplicate property A.x on line 3 (first declared on line 2)",
		},
		{
			name:    "structural",
			src:     "class A {\n  let x: Int\n}",
			target:  new(*scanner.StructuralError),
			message: "Error: line 1: class should be declared as final",
		},
		{
			name:    "nothing to generate",
			src:     "let x = 1",
			target:  new(*scanner.StructuralError),
			message: "Error: no struct or final class declaration found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := clipboard.NewMemory(tt.src)
			rec := &recordingNotifier{}
			svc := New(discardLogger(), nil, Config{Clipboard: cb, Notifier: rec})

			err := svc.Run(context.Background())
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "unexpected error type %T", err)

			assert.Equal(t, tt.src, cb.Text())
			assert.Equal(t, 0, cb.Writes())
			assert.Equal(t, []notify.Notification{{Title: "Code generation failed", Message: tt.message}}, rec.got)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("read-only") }

func TestRunWriteFailure(t *testing.T) {
	rec := &recordingNotifier{}
	svc := New(discardLogger(), nil, Config{
		Clipboard: clipboard.Pair{In: clipboard.NewMemory(userSource), Out: clipboard.Stream{Out: failingWriter{}}},
		Notifier:  rec,
	})

	err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "write output: "), err.Error())
	require.Len(t, rec.got, 1)
	assert.Equal(t, "Code generation failed", rec.got[0].Title)
}

func TestRunNotifierErrorIsNotFatal(t *testing.T) {
	cb := clipboard.NewMemory(userSource)
	svc := New(discardLogger(), nil, Config{
		Clipboard: cb,
		Notifier:  &recordingNotifier{err: errors.New("no display")},
	})
	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, 1, cb.Writes())
}

func TestRunMutedSound(t *testing.T) {
	var bell, term bytes.Buffer
	cb := clipboard.NewMemory(userSource)
	svc := New(discardLogger(), nil, Config{
		Clipboard: cb,
		Notifier:  notify.Multi{notify.NewTerminal(&term), notify.NewSound(true, &bell)},
	})
	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, bell.String())
	assert.Equal(t, "[OK] Code generated: The code has been copied to the clipboard.\n", term.String())
}

func TestDescribe(t *testing.T) {
	inner := &swift.TypeInferenceError{Declaration: "A", Property: scanner.PropertyDeclaration{Name: "x"}}
	wrapped := fmt.Errorf("generate A: %w", inner)
	assert.Equal(t, inner.Error(), Describe(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, "boom", Describe(plain))
}
