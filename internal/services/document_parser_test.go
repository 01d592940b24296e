package services

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>` + body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextPlain(t *testing.T) {
	text, err := NewDocumentParser().ExtractText(FileTypeTXT, []byte("SKILLS\nGo, SQL"))
	require.NoError(t, err)
	assert.Equal(t, "SKILLS\nGo, SQL", text)
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>SKILLS</w:t></w:r></w:p><w:p><w:r><w:t>Go &amp; SQL</w:t></w:r></w:p>`)

	text, err := NewDocumentParser().ExtractText(FileTypeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "SKILLS\nGo & SQL", text)
}

func TestExtractTextErrors(t *testing.T) {
	p := NewDocumentParser()

	_, err := p.ExtractText("rtf", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = p.ExtractText(FileTypeTXT, []byte("  \n "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = p.ExtractText(FileTypePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = p.ExtractText(FileTypeDOCX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.TXT")
	require.NoError(t, os.WriteFile(path, []byte("EDUCATION\nMIT"), 0o644))

	text, err := NewDocumentParser().ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EDUCATION\nMIT", text)
}

func TestFileTypeOf(t *testing.T) {
	ft, err := FileTypeOf("CV.Docx")
	require.NoError(t, err)
	assert.Equal(t, FileTypeDOCX, ft)

	_, err = FileTypeOf("cv.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p><w:p><w:r><w:t>C</w:t><w:br/><w:t>D</w:t></w:r></w:p>`
	assert.Equal(t, "A\tB\nC\nD", docxXMLToText(xml))
}
