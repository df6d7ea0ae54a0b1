package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout map[string]string // keyed by last arg ("tsv" or "")
	err    error
}

func (f fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	key := ""
	if args[len(args)-1] == "tsv" {
		key = "tsv"
	}
	return []byte(f.stdout[key]), nil, nil
}

func TestTesseract_Recognize(t *testing.T) {
	tsv := strings.Join([]string{
		"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
		"5\t1\t1\t1\t1\t1\t10\t10\t50\t20\t96\tTHE",
		"5\t1\t1\t1\t1\t2\t70\t10\t90\t20\t88\tHOME",
		"5\t1\t1\t1\t1\t3\t170\t10\t90\t20\t-1\t",
	}, "\n")

	tess := NewTesseract(Config{}, nil)
	tess.runner = fakeRunner{stdout: map[string]string{
		"":    "THE HOME DEPOT\r\nTotal:   $394.39\n\n\n\n11/12/2025\n",
		"tsv": tsv,
	}}

	rec, err := tess.Recognize(context.Background(), "file:///tmp/receipt.png")
	require.NoError(t, err)

	assert.Contains(t, rec.Text, "THE HOME DEPOT")
	assert.NotContains(t, rec.Text, "\r")
	assert.NotContains(t, rec.Text, "   ")
	assert.GreaterOrEqual(t, rec.Confidence, 0)
	assert.LessOrEqual(t, rec.Confidence, 100)
	// Mean word confidence is 92; blended with the heuristic it stays high.
	assert.Greater(t, rec.Confidence, 60)
}

func TestTesseract_RunFailure(t *testing.T) {
	tess := NewTesseract(Config{}, nil)
	tess.runner = fakeRunner{err: errors.New("exit status 1")}

	_, err := tess.Recognize(context.Background(), "receipt.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
}

func TestNormalize(t *testing.T) {
	in := "A\r\nB\t\tC\n\n\n\nD   E\n----\nF  "
	out := Normalize(in)

	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\t")
	assert.NotContains(t, out, "----")
	assert.NotContains(t, out, "\n\n\n")
	assert.Contains(t, out, "D E")
}

func TestNewExecRunner_DefaultsLogger(t *testing.T) {
	r := newExecRunner(nil)
	assert.NotNil(t, r.logger)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...(truncated)", truncate("abcdef", 3))
}

func TestHeuristicConfidence(t *testing.T) {
	receipt := "THE HOME DEPOT 11/12/2025 Total: $394.39"
	noise := "zz"

	assert.Greater(t, heuristicConfidence(receipt), heuristicConfidence(noise))
	assert.LessOrEqual(t, heuristicConfidence(receipt), 1.0)
	assert.GreaterOrEqual(t, heuristicConfidence(noise), 0.0)
}
