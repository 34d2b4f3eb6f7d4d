package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/momentics/hioload-mem/record"
)

func runCmd(t *testing.T, environ []string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var o, e bytes.Buffer
	code = run(args, environ, &o, &e)
	return code, o.String(), e.String()
}

func TestAdd(t *testing.T) {
	code, out, _ := runCmd(t, nil, "add", "2", "40")
	if code != 0 || out != "42\n" {
		t.Fatalf("code=%d out=%q", code, out)
	}
	if code, _, _ := runCmd(t, nil, "add", "1"); code != 2 {
		t.Fatalf("missing operand: code=%d", code)
	}
	if code, _, _ := runCmd(t, nil, "add", "1", "-3"); code != 2 {
		t.Fatalf("negative operand: code=%d", code)
	}
}

func TestToJSON(t *testing.T) {
	code, out, errOut := runCmd(t, nil, "to-json", "--id", "42", "--value", "3.14", "--timestamp", "2024-01-01T00:00:00Z")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	want := `{"id":42,"value":3.14,"timestamp":"2024-01-01T00:00:00Z"}` + "\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
	if code, _, _ := runCmd(t, nil, "to-json", "--id", "1"); code != 2 {
		t.Fatalf("missing flags: code=%d", code)
	}
}

func TestToJSONEnv(t *testing.T) {
	env := []string{"HIOLOAD_MEM_ID=7", "HIOLOAD_MEM_VALUE=1.5", "HIOLOAD_MEM_TIMESTAMP=t"}
	code, out, _ := runCmd(t, env, "to-json", "--id", "8")
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	if out != `{"id":8,"value":1.5,"timestamp":"t"}`+"\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFromJSON(t *testing.T) {
	code, out, _ := runCmd(t, nil, "from-json", `{"id":42,"value":3.14,"timestamp":"2024-01-01T00:00:00Z"}`)
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	want := "ID: 42\nValue: 3.14\nTimestamp: 2024-01-01T00:00:00Z\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	for _, in := range []string{`{"id": 1}`, `not json`, `{"id":"x","value":1,"timestamp":"t"}`} {
		code, out, errOut := runCmd(t, nil, "from-json", in)
		if code != 1 || out != "" || !strings.HasPrefix(errOut, "Error: ") {
			t.Errorf("%s: code=%d out=%q stderr=%q", in, code, out, errOut)
		}
	}
}

func TestGenerate(t *testing.T) {
	code, out, _ := runCmd(t, nil, "generate")
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	p, err := record.Decode([]byte(strings.TrimSpace(out)))
	if err != nil {
		t.Fatal(err)
	}
	if p.ID < 1 || p.ID >= 1000 || p.Value < 0 || p.Value >= 100 {
		t.Fatalf("out of range: %+v", p)
	}
}

func TestUsage(t *testing.T) {
	if code, out, _ := runCmd(t, nil, "--help"); code != 0 || !strings.Contains(out, "simulate") {
		t.Fatalf("help: code=%d out=%q", code, out)
	}
	if code, _, _ := runCmd(t, nil); code != 2 {
		t.Fatalf("no command: code=%d", code)
	}
	if code, _, errOut := runCmd(t, nil, "frobnicate"); code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("unknown command: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ := runCmd(t, []string{"HIOLOAD_MEM_RECORDS=x"}, "simulate"); code != 2 {
		t.Fatalf("bad env: code=%d", code)
	}
}

func decodeLines(t *testing.T, r io.Reader) []record.DataPoint {
	t.Helper()
	var ps []record.DataPoint
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p, err := record.Decode(sc.Bytes())
		if err != nil {
			t.Fatalf("line %d: %v", len(ps)+1, err)
		}
		ps = append(ps, p)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestSimulateAccumulate(t *testing.T) {
	code, out, errOut := runCmd(t, nil, "simulate", "-n", "250", "-b", "100", "--initial-size", "16", "-L", "debug")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	if ps := decodeLines(t, strings.NewReader(out)); len(ps) != 250 {
		t.Fatalf("got %d points, want 250", len(ps))
	}
	if !strings.Contains(errOut, "committed batch") {
		t.Fatalf("missing debug log: %q", errOut)
	}
}

func TestSimulateReplace(t *testing.T) {
	code, out, errOut := runCmd(t, nil, "simulate", "--mode", "replace", "-n", "250", "-b", "100", "--log-json")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	// only the last, partial batch is visible
	if ps := decodeLines(t, strings.NewReader(out)); len(ps) != 50 {
		t.Fatalf("got %d points, want 50", len(ps))
	}
	if !strings.HasPrefix(errOut, "{") {
		t.Fatalf("expected json logs: %q", errOut)
	}
}

func TestSimulateMaxLen(t *testing.T) {
	code, _, errOut := runCmd(t, nil, "simulate", "-n", "100", "--max-len", "10")
	if code != 1 || !strings.Contains(errOut, "max-len") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestSimulateCompressed(t *testing.T) {
	dir := t.TempDir()
	for _, c := range []string{"gzip", "zstd"} {
		t.Run(c, func(t *testing.T) {
			path := filepath.Join(dir, "out."+c)
			code, out, errOut := runCmd(t, nil, "simulate", "-n", "30", "-b", "7", "-z", c, "-o", path)
			if code != 0 || out != "" {
				t.Fatalf("code=%d out=%q stderr=%q", code, out, errOut)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			var r io.Reader
			switch c {
			case "gzip":
				zr, err := gzip.NewReader(f)
				if err != nil {
					t.Fatal(err)
				}
				r = zr
			case "zstd":
				zr, err := zstd.NewReader(f)
				if err != nil {
					t.Fatal(err)
				}
				defer zr.Close()
				r = zr
			}
			if ps := decodeLines(t, r); len(ps) != 30 {
				t.Fatalf("got %d points, want 30", len(ps))
			}
		})
	}
}
