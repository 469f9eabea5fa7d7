//go:generate mockgen -destination=./mocks/orchestrator.go . Catalog,URLResolver,Detector,PostProcessor

package orchestrator

import (
	"context"

	"github.com/spf13/afero"

	"github.com/glorpus-work/getdriver/pkg/config"
	"github.com/glorpus-work/getdriver/pkg/detect"
	"github.com/glorpus-work/getdriver/pkg/download"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

// Catalog is the subset of the catalog client used by the orchestrator.
type Catalog interface {
	Latest(ctx context.Context, phase model.Phase) (string, error)
	AllVersions(ctx context.Context) ([]string, error)
}

// URLResolver finds a validated download URL for a version.
type URLResolver interface {
	URLFor(ctx context.Context, version string, p platform.Platform) (string, error)
}

// Detector reads the installed browser version.
type Detector interface {
	InstalledVersion(ctx context.Context, p platform.Platform, target detect.Target) (string, error)
}

// PostProcessor unpacks archives and exposes the driver on PATH.
type PostProcessor interface {
	ExtractAndNormalize(ctx context.Context, archivePath, destDir string, p platform.Platform) error
	AddToPath(dir string) (string, error)
}

// Event phases.
const (
	EventResolving   = "resolving"
	EventDownloading = "downloading"
	EventExtracting  = "extracting"
	EventInstalling  = "installing"
	EventDone        = "done"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|extracting|installing|done
	ID    string // version the step works on
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// DownloadOptions control DownloadVersion and its channel variants.
type DownloadOptions struct {
	OutputDir string // empty selects chromedriver/<version>/bin below the base dir
	Extract   bool
}

// AutoOptions control AutoDownload.
type AutoOptions struct {
	OutputDir string
	Extract   bool
	Chromium  bool // match the installed Chromium instead of Chrome
}

// Option customizes New.
type Option func(*options)

type options struct {
	config   *config.Config
	host     platform.Host
	hostSet  bool
	fs       afero.Fs
	baseDir  string
	hooks    Hooks
	catalog  Catalog
	resolver URLResolver
	detector Detector
	dl       download.Manager
	post     PostProcessor
}

// WithConfig sets the configuration the default collaborators are built from.
func WithConfig(cfg *config.Config) Option { return func(o *options) { o.config = cfg } }

// WithHost replaces the host probes used for detection and mac labels.
func WithHost(h platform.Host) Option {
	return func(o *options) { o.host, o.hostSet = h, true }
}

// WithFs sets the filesystem downloads and extraction write to.
func WithFs(fs afero.Fs) Option { return func(o *options) { o.fs = fs } }

// WithBaseDir sets the directory default output dirs are relative to.
func WithBaseDir(dir string) Option { return func(o *options) { o.baseDir = dir } }

// WithHooks registers progress callbacks.
func WithHooks(h Hooks) Option { return func(o *options) { o.hooks = h } }

// WithCatalog replaces the catalog client.
func WithCatalog(c Catalog) Option { return func(o *options) { o.catalog = c } }

// WithResolver replaces the URL resolver.
func WithResolver(r URLResolver) Option { return func(o *options) { o.resolver = r } }

// WithDetector replaces the installed version detector.
func WithDetector(d Detector) Option { return func(o *options) { o.detector = d } }

// WithDownloader replaces the download manager.
func WithDownloader(d download.Manager) Option { return func(o *options) { o.dl = d } }

// WithPostProcessor replaces the archive post-processor.
func WithPostProcessor(p PostProcessor) Option { return func(o *options) { o.post = p } }
