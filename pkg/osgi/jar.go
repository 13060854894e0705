package osgi

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eddi-weiss/mavenizor/pkg/errors"
)

const manifestPath = "META-INF/MANIFEST.MF"

// maxEmbeddedSize bounds how much of a nested jar is read into memory.
const maxEmbeddedSize = 64 << 20

// ReadJar reads a bundle jar: its manifest and the Maven metadata of each
// embedded library listed on Bundle-ClassPath.
func ReadJar(path string) (Bundle, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Bundle{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	mf, ok := files[manifestPath]
	if !ok {
		return Bundle{}, errors.New(errors.ErrCodeInvalidManifest, "%s: no %s", path, manifestPath)
	}
	rc, err := mf.Open()
	if err != nil {
		return Bundle{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s: open manifest", path)
	}
	m, err := ParseManifest(rc)
	rc.Close()
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", path, err)
	}

	b, err := BundleFromManifest(m)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", path, err)
	}

	for i := range b.Embedded {
		f, ok := files[b.Embedded[i].Path]
		if !ok {
			continue
		}
		md, err := readPomProperties(f)
		if err != nil {
			return Bundle{}, fmt.Errorf("%s!/%s: %w", path, f.Name, err)
		}
		b.Embedded[i].Metadata = md
	}
	return b, nil
}

// readPomProperties looks for META-INF/maven/*/*/pom.properties inside a
// nested jar. It returns nil when the jar carries no usable metadata.
func readPomProperties(f *zip.File) (*LibraryMetadata, error) {
	if f.UncompressedSize64 > maxEmbeddedSize {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Not a zip; nothing to detect.
		return nil, nil
	}

	var candidates []*zip.File
	for _, inner := range zr.File {
		if strings.HasPrefix(inner.Name, "META-INF/maven/") && strings.HasSuffix(inner.Name, "/pom.properties") {
			candidates = append(candidates, inner)
		}
	}
	// Shaded jars carry several; only an unambiguous one is trusted.
	if len(candidates) != 1 {
		return nil, nil
	}

	prc, err := candidates[0].Open()
	if err != nil {
		return nil, err
	}
	defer prc.Close()
	props, err := ReadProperties(prc)
	if err != nil {
		return nil, err
	}
	pm := PropertyMap(props)
	md := &LibraryMetadata{
		GroupID:    pm["groupId"],
		ArtifactID: pm["artifactId"],
		Version:    pm["version"],
	}
	if md.GroupID == "" || md.ArtifactID == "" || md.Version == "" {
		return nil, nil
	}
	return md, nil
}

// ScanDir reads every *.jar directly inside dir into a Graph, ordered by
// file name.
func ScanDir(dir string) (*Graph, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.jar"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	g := &Graph{Bundles: make([]Bundle, 0, len(paths))}
	for _, p := range paths {
		b, err := ReadJar(p)
		if err != nil {
			return nil, err
		}
		g.Bundles = append(g.Bundles, b)
	}
	return g, nil
}
