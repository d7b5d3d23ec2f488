// Where: internal/imagebuild/builder_test.go
// What: Tests for Lambda container image builds.
package imagebuild

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/docker/docker/api/types/build"
)

type fakeDockerClient struct {
	requests []build.ImageBuildOptions
	contexts [][]string
	failOn   string
}

func (f *fakeDockerClient) ImageBuild(
	_ context.Context,
	buildContext io.Reader,
	options build.ImageBuildOptions,
) (build.ImageBuildResponse, error) {
	entries, err := listTarEntries(buildContext)
	if err != nil {
		return build.ImageBuildResponse{}, err
	}
	f.contexts = append(f.contexts, entries)
	f.requests = append(f.requests, options)
	if len(options.Tags) > 0 && options.Tags[0] == f.failOn {
		return build.ImageBuildResponse{}, errors.New("daemon rejected build")
	}
	return build.ImageBuildResponse{Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func writeSourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, function := range Functions {
		contextDir := filepath.Join(dir, "lambda", function)
		if err := os.MkdirAll(filepath.Join(contextDir, "src"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		files := map[string]string{
			"Dockerfile":     "FROM public.ecr.aws/lambda/python:3.12\n",
			"src/handler.py": "def handler(event, context):\n    return event\n",
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(contextDir, name), []byte(content), 0o644); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
		}
	}
	return dir
}

func TestBuildImagesBuildsAllFunctions(t *testing.T) {
	client := &fakeDockerClient{}
	var out bytes.Buffer
	builder := &Builder{Client: client, Out: &out}

	images, err := builder.BuildImages(context.Background(), Options{SourceDir: writeSourceTree(t)})
	if err != nil {
		t.Fatalf("build images: %v", err)
	}

	want := []string{"osml-intake:latest", "osml-ingest:latest", "osml-stac:latest"}
	if !reflect.DeepEqual(images, want) {
		t.Fatalf("unexpected images: %v", images)
	}
	if len(client.requests) != 3 {
		t.Fatalf("expected three build requests, got %d", len(client.requests))
	}
	for _, entries := range client.contexts {
		sort.Strings(entries)
		if !reflect.DeepEqual(entries, []string{"Dockerfile", "src", "src/handler.py"}) {
			t.Fatalf("unexpected build context entries: %v", entries)
		}
	}
}

func TestBuildImagesAppliesTagAndNoCache(t *testing.T) {
	client := &fakeDockerClient{}
	builder := &Builder{Client: client}

	images, err := builder.BuildImages(context.Background(), Options{
		SourceDir: writeSourceTree(t),
		Tag:       "v2",
		NoCache:   true,
	})
	if err != nil {
		t.Fatalf("build images: %v", err)
	}
	if images[0] != "osml-intake:v2" {
		t.Fatalf("unexpected tag: %v", images)
	}
	for _, request := range client.requests {
		if !request.NoCache {
			t.Fatalf("expected NoCache propagated: %+v", request)
		}
	}
}

func TestBuildImagesStopsOnFailure(t *testing.T) {
	client := &fakeDockerClient{failOn: "osml-ingest:latest"}
	builder := &Builder{Client: client}

	images, err := builder.BuildImages(context.Background(), Options{SourceDir: writeSourceTree(t)})
	if err == nil {
		t.Fatalf("expected build failure")
	}
	if len(images) != 1 || images[0] != "osml-intake:latest" {
		t.Fatalf("expected only the first image built, got %v", images)
	}
	if len(client.requests) != 2 {
		t.Fatalf("expected no request after the failure, got %d", len(client.requests))
	}
}

func TestBuildImagesMissingContext(t *testing.T) {
	builder := &Builder{Client: &fakeDockerClient{}}
	if _, err := builder.BuildImages(context.Background(), Options{SourceDir: t.TempDir()}); err == nil {
		t.Fatalf("expected missing build context error")
	}
}
