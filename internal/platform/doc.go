package platform

// Package platform contains OS integration and external tooling glue:
// working-area file listing, portable entry names, binary lookup for ffmpeg and
// yt-dlp, and playlist probing through the ytdlp library.
