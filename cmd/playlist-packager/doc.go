// Command playlist-packager downloads a playlist or a single video with
// yt-dlp and delivers the result as one ZIP archive, either through a web form
// (serve) or directly on the command line (fetch).
package main
