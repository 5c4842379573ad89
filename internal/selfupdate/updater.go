package selfupdate

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// binaryName is the executable inside release archives.
const binaryName = "estudos"

// Progress stages, in the order Update reports them.
const (
	StageCheck    = "check"
	StageDownload = "download"
	StageVerify   = "verify"
	StageExtract  = "extract"
	StageApply    = "apply"
	StageDone     = "done"
)

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion pins a release tag; empty means latest.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the target release for this platform, verifies it
// against checksums.txt and swaps it in place of the running binary.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == DevVersion {
		return ErrDevBuild
	}
	report := func(stage, format string, args ...any) {
		progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageCheck, "Checking for the latest release...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(StageDownload, "Downloading %s...", tag)
	archive, err := c.fetch(ctx, c.releaseURL(tag, asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	sums, err := c.fetch(ctx, c.releaseURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("no checksum for %s in checksums.txt", asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report(StageExtract, "Extracting %s...", binaryName)
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageApply, "Replacing the installed binary...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(bin)
	if err := applyUpdate(bin, target, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, "Updated to %s", tag)
	return nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

// assetNameFor follows the goreleaser naming of the release workflow.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	var osName, ext string
	switch goos {
	case "linux":
		osName, ext = "Linux", ".tar.gz"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch := releaseArch(goarch)
	if arch == "" {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return fmt.Sprintf("%s_%s_%s%s", binaryName, osName, arch, ext), nil
}

func releaseArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i386"
	}
	return ""
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
