package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/execdir/internal/launch"
	"github.com/roach88/execdir/internal/resolve"
	"github.com/roach88/execdir/internal/store"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("ALIAS_NOT_FOUND", `alias for path "x" not found`, nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALIAS_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, `alias for path "x" not found`, resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("plain value")
	require.NoError(t, err)
	assert.Equal(t, "plain value\n", buf.String())
}

func TestOutputFormatter_TextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	list := aliasList{{Name: "a", Path: "/a"}, {Name: "b", Path: "/b:c"}}
	require.NoError(t, formatter.Success(list))
	assert.Equal(t, "a:/a\nb:/b:c\n", buf.String())
}

func TestOutputFormatter_TextErrorIsSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("STORE_IO", "boom", nil))
	assert.Empty(t, buf.String(), "text errors are printed by the dispatcher")
}

func TestAliasResult_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, aliasResult{Name: "missing"}.RenderText(buf))
	assert.Equal(t, "(null)\n", buf.String())

	buf.Reset()
	p := "/tmp/x"
	require.NoError(t, aliasResult{Name: "x", Path: &p}.RenderText(buf))
	assert.Equal(t, "/tmp/x\n", buf.String())
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "bad", NewExitError(ExitFailure, "bad").Error())

	cause := errors.New("cause")
	wrapped := WrapExitError(ExitFailure, "context", cause)
	assert.Equal(t, "context: cause", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, "", (&ExitError{Code: 3}).Error())
	assert.Equal(t, "cause", (&ExitError{Code: 1, Err: cause}).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, 42, GetExitCode(&ExitError{Code: 42}))
	assert.Equal(t, 7, GetExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 7})))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&store.Error{Code: store.ErrCodeOpen}, "STORE_OPEN"},
		{&store.Error{Code: store.ErrCodeIO}, "STORE_IO"},
		{&resolve.Error{Code: resolve.ErrCodeAliasNotFound}, "ALIAS_NOT_FOUND"},
		{&resolve.Error{Code: resolve.ErrCodePathCreateFailed}, "PATH_CREATE_FAILED"},
		{&launch.Error{Code: launch.ErrCodeChdir}, "CHDIR"},
		{fmt.Errorf("wrapped: %w", &launch.Error{Code: launch.ErrCodeExec}), "EXEC"},
		{NewExitError(ExitFailure, "-r requires one argument"), "ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
