package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/gin"
	"github.com/bobinette/raddaran/log"
	paperCmd "github.com/bobinette/raddaran/paper/cmd"
)

func TestPaperCommands(t *testing.T) {
	logger = log.Discard()

	srv := gin.New("test", logger)
	session, err := paperCmd.Start(srv, paperCmd.Configuration{ShareURL: "https://share.test"}, logger)
	require.NoError(t, err)
	defer session.Close()

	ts := httptest.NewServer(srv)
	defer ts.Close()
	serverURL = ts.URL

	dir := t.TempDir()
	data := []byte("%PDF-1.4\x00\xff")
	filename := filepath.Join(dir, "intro_to_ml.pdf")
	require.NoError(t, os.WriteFile(filename, data, 0600))

	run := func(cmd *cobra.Command, args ...string) string {
		buf := &bytes.Buffer{}
		cmd.SetOut(buf)
		cmd.Run(cmd, args)
		return buf.String()
	}

	paperTitle, paperAuthor, paperCategory = "Introduction to Machine Learning", "John Doe", "computer_science"
	out := run(&UploadPaperCommand, filename)
	assert.Contains(t, out, "1\t")
	assert.Contains(t, out, "Computer Science")

	paperTitle, paperAuthor, paperCategory = "Deep Learning Study", "Jane Smith", "Computer Science"
	paperSections = map[string]string{"Abstract": "We study X."}
	out = run(&GeneratePaperCommand, "research")
	assert.Contains(t, out, "deep_learning_study.pdf")
	assert.Contains(t, out, "Abstract: We study X.")
	assert.Contains(t, out, "Introduction: [Introduction content will be generated here]")

	require.NoError(t, EditPaperCommand.Flags().Set("title", "Machine Learning 101"))
	out = run(&EditPaperCommand, "1")
	assert.Contains(t, out, "Machine Learning 101\tJohn Doe")

	paperQuery, paperSort = "", "title"
	out = run(&ListPapersCommand)
	assert.Contains(t, out, "# Computer Science: 2")
	assert.Contains(t, out, "2 papers")

	paperOutput = t.TempDir()
	run(&DownloadPaperCommand, "1")
	downloaded, err := os.ReadFile(filepath.Join(paperOutput, "intro_to_ml.pdf"))
	require.NoError(t, err)
	assert.Equal(t, data, downloaded)

	out = run(&SharePaperCommand, "1")
	assert.Equal(t, "https://share.test/1\n", out)

	out = run(&DeletePaperCommand, "1", "1")
	assert.Equal(t, "deleted 1\n", out)
	assert.Equal(t, 1, session.Info().Papers)
}
