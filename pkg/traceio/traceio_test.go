package traceio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/awohns/copyviz/pkg/errors"
	"github.com/awohns/copyviz/pkg/genome"
)

const validDoc = `{
  "sequence_length": 10.0,
  "positions": [2.0, 5.0, 8.0],
  "ancestors": [
    {"id": 1, "alleles": [0, 1, 0], "start": 0, "end": 3, "focal_sites": [1]},
    {"id": 2, "alleles": [1, 0, 1], "start": 0, "end": 3, "focal_sites": [0]}
  ],
  "samples": [[0, 1, 1]],
  "edges": [
    {"left": 0, "right": 10, "parent": 0, "children": [1]},
    {"left": 0, "right": 8, "parent": 1, "children": [3]},
    {"left": 8, "right": 10, "parent": 2, "children": [3]}
  ]
}`

func TestRead(t *testing.T) {
	tr, err := Read(strings.NewReader(validDoc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if tr.NumSites() != 3 {
		t.Errorf("NumSites = %d, want 3", tr.NumSites())
	}
	if got := tr.Space(); got != (genome.IDSpace{NumAncestors: 2, NumSamples: 1}) {
		t.Errorf("Space = %+v", got)
	}
	if tr.Ancestors[0].FocalSites[0] != 1 {
		t.Errorf("ancestor 1 focal site = %d, want 1", tr.Ancestors[0].FocalSites[0])
	}
	if len(tr.Edges) != 3 || tr.Edges[2].Parent != 2 {
		t.Errorf("edges decoded wrong: %+v", tr.Edges)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		mangle   func(string) string
		wantCode errors.Code
	}{
		{
			name:     "broken json",
			mangle:   func(s string) string { return s[:len(s)/2] },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name:     "unknown field",
			mangle:   func(s string) string { return strings.Replace(s, `"sequence_length"`, `"seq_len"`, 1) },
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name: "sample site count mismatch",
			mangle: func(s string) string {
				return strings.Replace(s, `"samples": [[0, 1, 1]]`, `"samples": [[0, 1]]`, 1)
			},
			wantCode: errors.ErrCodeDimensionMismatch,
		},
		{
			name: "ancestor ids not dense",
			mangle: func(s string) string {
				return strings.Replace(s, `{"id": 2,`, `{"id": 5,`, 1)
			},
			wantCode: errors.ErrCodeInvalidTrace,
		},
		{
			name: "inverted edge",
			mangle: func(s string) string {
				return strings.Replace(s, `{"left": 8, "right": 10,`, `{"left": 10, "right": 8,`, 1)
			},
			wantCode: errors.ErrCodeMalformedGenealogy,
		},
		{
			// 3 is the sample's dense id; samples never donate.
			name: "sample as parent",
			mangle: func(s string) string {
				return strings.Replace(s, `{"left": 0, "right": 8, "parent": 1, "children": [3]}`,
					`{"left": 0, "right": 8, "parent": 3, "children": [1]}`, 1)
			},
			wantCode: errors.ErrCodeMalformedGenealogy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.mangle(validDoc)))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Read() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tr, err := Read(strings.NewReader(validDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(tr, &buf))

	back, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, tr, back)
}

func TestExportRoundTrip(t *testing.T) {
	tr, err := Read(strings.NewReader(validDoc))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Export(tr, path))

	back, err := Import(path)
	require.NoError(t, err)
	require.Equal(t, tr, back)
}

func TestValidateRejectsEmptyTrace(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Trace)
	}{
		{"no sites", func(tr *Trace) { tr.Positions = nil }},
		{"no ancestors", func(tr *Trace) { tr.Ancestors = nil }},
		{"no samples", func(tr *Trace) { tr.Samples = nil }},
		{"bad length", func(tr *Trace) { tr.SequenceLength = 0 }},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Read(strings.NewReader(validDoc))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			tt.mutate(tr)
			if err := tr.Validate(); !errors.Is(err, errors.ErrCodeInvalidTrace) {
				t.Errorf("Validate() = %v, want INVALID_TRACE", err)
			}
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(t.TempDir() + "/missing.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import = %v, want FILE_NOT_FOUND", err)
	}
}
