package download

// Package download turns a DownloadRequest into a yt-dlp job (via
// github.com/lrstanley/go-ytdlp) and runs it into a working directory. It owns
// format selection, job configuration, the ffmpeg precondition, and mapping of
// engine progress onto model.ProgressEvent.
