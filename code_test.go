package wilddog_test

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/wilddog/wilddog-go"
	"github.com/wilddog/wilddog-go/node"
	"github.com/wilddog/wilddog-go/ref"
	"github.com/wilddog/wilddog-go/uri"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	_, resolveErr := ref.Resolve("demo.wilddogio.com/a")
	_, emptyErr := uri.Parse("")
	_, childErr := ref.Child("/a", "")
	_, navErr := ref.Navigate("/a", ref.OpParent, "")
	_, opErr := ref.Navigate("/a", ref.Op(42), "")
	_, nullErr := node.Serialize(nil)
	_, missErr := node.Serialize(node.New(node.KindUTF8String, nil))
	_, valErr := node.Serialize(node.New(node.KindInteger, "1"))
	_, parseErr := node.Parse([]byte(`{"a":`))
	_, arrErr := node.Parse([]byte(`[1]`))

	cases := []struct {
		name string
		err  error
		want wilddog.Code
	}{
		{"nil", nil, wilddog.OK},
		{"code", wilddog.ErrQueueFull, wilddog.ErrQueueFull},
		{"wrapped code", fmt.Errorf("observe: %w", wilddog.ErrObserve), wilddog.ErrObserve},
		{"malformed url", resolveErr, wilddog.ErrInvalid},
		{"empty url", emptyErr, wilddog.ErrInvalid},
		{"invalid child", childErr, wilddog.ErrInvalid},
		{"no parent", navErr, wilddog.ErrInvalid},
		{"invalid op", opErr, wilddog.ErrInvalid},
		{"nil node", nullErr, wilddog.ErrNull},
		{"missing value", missErr, wilddog.ErrNull},
		{"invalid value", valErr, wilddog.ErrInvalid},
		{"malformed json", parseErr, wilddog.ErrInvalid},
		{"array", arrErr, wilddog.ErrInvalid},
		{"network", &net.OpError{Op: "write", Net: "udp", Err: errors.New("refused")}, wilddog.ErrSocket},
		{"writer", errors.New("broken pipe"), wilddog.ErrSend},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := wilddog.CodeOf(c.err); got != c.want {
				t.Errorf("CodeOf(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}

func TestCode_String(t *testing.T) {
	t.Parallel()

	got := map[wilddog.Code]string{}
	for _, c := range []wilddog.Code{
		wilddog.OK,
		wilddog.ErrNull,
		wilddog.ErrInvalid,
		wilddog.ErrSend,
		wilddog.ErrObserve,
		wilddog.ErrSocket,
		wilddog.ErrNotAuth,
		wilddog.ErrQueueFull,
		wilddog.ErrMaxRetransmit,
		wilddog.Code(-6),
	} {
		got[c] = c.String()
	}

	want := map[wilddog.Code]string{
		wilddog.OK:               "OK",
		wilddog.ErrNull:          "NULL",
		wilddog.ErrInvalid:       "INVALID",
		wilddog.ErrSend:          "SENDERR",
		wilddog.ErrObserve:       "OBSERVEERR",
		wilddog.ErrSocket:        "SOCKETERR",
		wilddog.ErrNotAuth:       "NOTAUTH",
		wilddog.ErrQueueFull:     "QUEUEFULL",
		wilddog.ErrMaxRetransmit: "MAXRETRAN",
		wilddog.Code(-6):         "CODE(-6)",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Code.String() mismatch: got vs want\n%s", diff)
	}

	if got, want := wilddog.ErrNotAuth.Error(), "wilddog: NOTAUTH"; got != want {
		t.Errorf("Code.Error() = %q, want %q", got, want)
	}
}
