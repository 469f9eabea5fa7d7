// Package orchestrator is the library entry point of getdriver. It ties
// the catalog, the URL resolver, the installed-browser detector, the
// downloader and the archive post-processor together for one platform.
package orchestrator

import (
	"context"
	"path/filepath"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/catalog"
	"github.com/glorpus-work/getdriver/pkg/config"
	"github.com/glorpus-work/getdriver/pkg/detect"
	"github.com/glorpus-work/getdriver/pkg/download"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/installer"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/pkg/platform"
	"github.com/glorpus-work/getdriver/pkg/resolver"
	"github.com/glorpus-work/getdriver/pkg/version"
)

// Orchestrator resolves and downloads drivers for one platform. It holds
// no mutable state, so one instance per platform may be used concurrently.
type Orchestrator struct {
	Catalog  Catalog
	Resolver URLResolver
	Detector Detector
	DL       download.Manager
	Post     PostProcessor
	Hooks    Hooks // Hooks for progress and event notifications

	platform platform.Platform
	baseDir  string
}

// New creates an orchestrator for platformLabel. An empty label falls back
// to the configured default platform and then to the running host.
func New(platformLabel string, opts ...Option) (*Orchestrator, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config == nil {
		o.config = config.DefaultConfig()
	}
	if !o.hostSet {
		o.host = platform.CurrentHost()
	}
	if platformLabel == "" {
		platformLabel = o.config.Settings.Platform
	}

	p, err := platform.Resolve(platformLabel, o.host)
	if err != nil {
		return nil, err
	}
	logger.Debug("platform resolved", logger.Fields{"platform": p.String(), "host": o.host.String()})

	cfg := o.config
	hc := http.NewHTTPClient(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
	endpoints := cfg.CatalogEndpoints()
	known := catalog.NewJSONSource(hc, endpoints)

	if o.catalog == nil {
		var latest catalog.Source = known
		if cfg.Settings.Catalog == config.CatalogLegacyHTML {
			latest = catalog.NewLegacyHTMLSource(hc, endpoints, "")
		}
		o.catalog = catalog.NewClient(latest, catalog.NewBucketSource(hc, endpoints), known)
	}
	if o.resolver == nil {
		o.resolver = resolver.New(known, hc, endpoints.Storage, o.host)
	}
	if o.detector == nil {
		o.detector = detect.New(nil)
	}
	if o.dl == nil {
		o.dl = download.NewManager(cfg.DownloadOptions(), o.fs)
	}
	if o.post == nil {
		o.post = installer.New(o.fs, o.host)
	}

	return &Orchestrator{
		Catalog:  o.catalog,
		Resolver: o.resolver,
		Detector: o.detector,
		DL:       o.dl,
		Post:     o.post,
		Hooks:    o.hooks,
		platform: p,
		baseDir:  o.baseDir,
	}, nil
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Platform returns the platform the orchestrator resolves for.
func (o *Orchestrator) Platform() platform.Platform {
	return o.platform
}

// DriverFilename returns the driver binary name on the platform.
func (o *Orchestrator) DriverFilename() string {
	return o.platform.DriverFilename()
}

// StableVersion returns the latest stable driver version.
func (o *Orchestrator) StableVersion(ctx context.Context) (string, error) {
	return o.Catalog.Latest(ctx, model.PhaseStable)
}

// BetaVersion returns the latest beta driver version.
func (o *Orchestrator) BetaVersion(ctx context.Context) (string, error) {
	return o.Catalog.Latest(ctx, model.PhaseBeta)
}

// AllVersions lists every version the catalogs know, ordered by major.
func (o *Orchestrator) AllVersions(ctx context.Context) ([]string, error) {
	return o.Catalog.AllVersions(ctx)
}

// VersionURL returns the validated download URL of v.
func (o *Orchestrator) VersionURL(ctx context.Context, v string) (string, error) {
	emit(o.Hooks, Event{Phase: EventResolving, ID: v, Msg: o.platform.String()})
	return o.Resolver.URLFor(ctx, v, o.platform)
}

// StableVersionURL returns the download URL of the latest stable version.
func (o *Orchestrator) StableVersionURL(ctx context.Context) (string, error) {
	v, err := o.StableVersion(ctx)
	if err != nil {
		return "", err
	}
	return o.VersionURL(ctx, v)
}

// BetaVersionURL returns the download URL of the latest beta version.
func (o *Orchestrator) BetaVersionURL(ctx context.Context) (string, error) {
	v, err := o.BetaVersion(ctx)
	if err != nil {
		return "", err
	}
	return o.VersionURL(ctx, v)
}

// OutputDir returns the default output directory of v:
// chromedriver/<v>/bin below the base directory.
func (o *Orchestrator) OutputDir(v string) string {
	return filepath.Join(o.baseDir, platform.DriverName, v, "bin")
}

// DownloadVersion downloads the driver archive of v and, when requested,
// extracts it. It returns the output directory.
func (o *Orchestrator) DownloadVersion(ctx context.Context, v string, opts DownloadOptions) (string, error) {
	url, err := o.VersionURL(ctx, v)
	if err != nil {
		return "", err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = o.OutputDir(v)
	}

	target, err := model.NewDownloadTarget(url, dir)
	if err != nil {
		return "", errutils.Kind(errutils.ErrDownload, err)
	}

	emit(o.Hooks, Event{Phase: EventDownloading, ID: v, Msg: url})
	archivePath, _, err := o.DL.Download(ctx, target)
	if err != nil {
		return "", errutils.Kind(errutils.ErrDownload, err)
	}

	if opts.Extract {
		emit(o.Hooks, Event{Phase: EventExtracting, ID: v, Msg: archivePath})
		if err := o.Post.ExtractAndNormalize(ctx, archivePath, dir, o.platform); err != nil {
			return "", errutils.Kind(errutils.ErrDownload, err)
		}
	}

	emit(o.Hooks, Event{Phase: EventDone, ID: v, Msg: dir})
	logger.Debug("driver downloaded", logger.Fields{"version": v, "dir": dir, "extracted": opts.Extract})
	return dir, nil
}

// DownloadStableVersion downloads the latest stable version.
func (o *Orchestrator) DownloadStableVersion(ctx context.Context, opts DownloadOptions) (string, error) {
	v, err := o.StableVersion(ctx)
	if err != nil {
		return "", err
	}
	return o.DownloadVersion(ctx, v, opts)
}

// DownloadBetaVersion downloads the latest beta version.
func (o *Orchestrator) DownloadBetaVersion(ctx context.Context, opts DownloadOptions) (string, error) {
	v, err := o.BetaVersion(ctx)
	if err != nil {
		return "", err
	}
	return o.DownloadVersion(ctx, v, opts)
}

// MatchingVersion returns the highest catalog version that is
// build-compatible with the installed browser. ok is false when the
// catalogs carry no such version.
func (o *Orchestrator) MatchingVersion(ctx context.Context, target detect.Target) (v string, ok bool, err error) {
	installed, err := o.Detector.InstalledVersion(ctx, o.platform, target)
	if err != nil {
		return "", false, err
	}
	if err := version.Validate(installed); err != nil {
		return "", false, errutils.Kind(errutils.ErrVersionUndetectable, err)
	}

	all, err := o.Catalog.AllVersions(ctx)
	if err != nil {
		return "", false, err
	}

	v, ok = version.HighestCompatible(installed, all)
	logger.Debug("matching version", logger.Fields{"installed": installed, "match": v, "found": ok})
	return v, ok, nil
}

// AutoDownload downloads the driver matching the installed browser.
func (o *Orchestrator) AutoDownload(ctx context.Context, opts AutoOptions) (string, error) {
	v, ok, err := o.MatchingVersion(ctx, detect.TargetFor(opts.Chromium))
	if err != nil {
		return "", errutils.Kind(errutils.ErrVersion, err)
	}
	if !ok {
		return "", errutils.ErrVersion
	}
	return o.DownloadVersion(ctx, v, DownloadOptions{OutputDir: opts.OutputDir, Extract: opts.Extract})
}

// Install auto-downloads and extracts the matching driver and appends its
// directory to PATH. It returns the absolute directory with forward
// slashes. The PATH change lasts for the rest of the process.
func (o *Orchestrator) Install(ctx context.Context, outputDir string, chromium bool) (string, error) {
	dir, err := o.AutoDownload(ctx, AutoOptions{OutputDir: outputDir, Extract: true, Chromium: chromium})
	if err != nil {
		return "", err
	}
	emit(o.Hooks, Event{Phase: EventInstalling, Msg: dir})
	return o.Post.AddToPath(dir)
}
