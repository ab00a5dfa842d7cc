package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestRequiresExactlyOneSource(t *testing.T) {
	restore := func(dir, url string) {
		ingestDir, ingestURL = dir, url
	}
	defer restore(ingestDir, ingestURL)

	ingestDir, ingestURL = "", ""
	err := ingestCmd(ingestCommand, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dir or --url")

	ingestDir, ingestURL = "reports/", "https://example.com/report"
	err = ingestCmd(ingestCommand, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dir or --url")
}
