package terminal

import (
	"bytes"
	"testing"
)

func TestEmergencyReset_WritesRestoreSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.Bytes()
	for _, seq := range [][]byte{csiMouseOff, csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn} {
		if !bytes.Contains(out, seq) {
			t.Errorf("missing %q in %q", seq, out)
		}
	}
	// alt screen must be left before attributes are reset
	if bytes.Index(out, csiAltScreenExit) > bytes.Index(out, csiSGR0) {
		t.Error("SGR reset written before alt screen exit")
	}
}
