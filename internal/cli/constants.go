package cli

// User-facing messages.
const (
	MsgDownloadFinished    = "download finished"
	MsgDownloadError       = "error: an error occurred at downloading"
	MsgReleaseURLError     = "error: could not find release url"
	MsgStableVersionError  = "error: could not find a stable release version"
	MsgBetaVersionError    = "error: could not find a beta release version"
	MsgMatchingError       = "error: could not find a driver version matching the installed browser"
	MsgAllVersionsError    = "error: could not list driver versions"
	MsgRequiredRelease     = "required: add a release version"
	MsgStableNotFound      = "not found"
	MsgBetaNotFound        = "not beta version available"
	latestURLsHeaderFormat = "Latest beta and stable release for %s:"
)

// TabWidth is the padding between columns in formatted output.
const TabWidth = 2
