package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/parametric-facade/internal/facade"
	"github.com/banshee-data/parametric-facade/internal/fsutil"
	"github.com/banshee-data/parametric-facade/internal/monitoring"
)

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func exampleResult(t *testing.T) facade.Result {
	t.Helper()
	f, err := facade.Configure(4, 2, 2)
	require.NoError(t, err)
	f, err = f.AddAttractor(1, 1, 1.0, 1.5)
	require.NoError(t, err)
	return f.Evaluate()
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(exampleResult(t), "example", "", fixedTime)

	_, err := uuid.Parse(doc.Metadata.RunID)
	assert.NoError(t, err, "run id should be a uuid")
	assert.Equal(t, "example", doc.Metadata.Name)
	assert.Equal(t, fixedTime, doc.Metadata.GeneratedAt)
	assert.Equal(t, "smoothstep", doc.Metadata.Falloff)
	assert.Equal(t, 2, doc.Metadata.TotalPanels)
	assert.Equal(t, Config{Width: 4, Height: 2, GridSize: 2, Cols: 2, Rows: 1}, doc.Config)
	assert.Len(t, doc.Attractors, 1)
	require.Len(t, doc.Panels, 2)
	assert.Equal(t, 0, doc.Panels[0].Col)
	assert.Equal(t, 1, doc.Panels[1].Col)
}

func TestNewDocument_KeepsRunID(t *testing.T) {
	doc := NewDocument(exampleResult(t), "", "run-42", fixedTime)
	assert.Equal(t, "run-42", doc.Metadata.RunID)
}

func TestEncode_Schema(t *testing.T) {
	f, err := facade.Configure(2, 2, 2)
	require.NoError(t, err)
	doc := NewDocument(f.Evaluate(), "", "run-1", fixedTime)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"metadata", "config", "attractors", "panels"} {
		assert.Contains(t, raw, key)
	}
	// No attractors encodes as an empty list, not null.
	assert.JSONEq(t, `[]`, string(raw["attractors"]))
	assert.JSONEq(t, `{"width":2,"height":2,"grid_size":2,"cols":1,"rows":1}`, string(raw["config"]))
	assert.JSONEq(t,
		`[{"row":0,"col":0,"x":1,"y":1,"influence":0,"rotation":0,"scale":0.5,"opacity":0.3}]`,
		string(raw["panels"]))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"metadata\""), "expected two-space indentation")
}

func TestEncodeDecode(t *testing.T) {
	doc := NewDocument(exampleResult(t), "example", "run-7", fixedTime)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	got, err := Decode(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, *got); diff != "" {
		t.Errorf("Decode(Encode(doc)) mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Inconsistent(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad json", `{"metadata":`},
		{"total mismatch", `{"metadata":{"total_panels":3},"config":{"cols":1,"rows":1},"panels":[{"row":0,"col":0}]}`},
		{"grid mismatch", `{"metadata":{"total_panels":1},"config":{"cols":2,"rows":1},"panels":[{"row":0,"col":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestWriteFile(t *testing.T) {
	original := monitoring.Logf
	defer monitoring.SetLogger(original)
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, format)
	})

	mfs := fsutil.NewMemoryFileSystem()
	doc := NewDocument(exampleResult(t), "example", "run-9", fixedTime)
	require.NoError(t, WriteFile(mfs, "out/example.json", doc))

	data, err := mfs.ReadFile("out/example.json")
	require.NoError(t, err)
	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "run-9", got.Metadata.RunID)
	assert.Len(t, logged, 1)
}
