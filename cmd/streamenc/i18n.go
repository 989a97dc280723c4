// Package main provides localization for the streamenc CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input":             "入力",
		"Output":            "出力先",
		"Video and Quality": "動画と品質",
		"Backend":           "バックエンド",
		"Debug":             "デバッグ",
		"Logging":           "ログ",

		// Root command
		"Encode image sequences into video files": "画像シーケンスを動画ファイルにエンコード",

		"streamenc streams frames through a GStreamer pipeline (or ffmpeg when GStreamer is unavailable) and writes the encoded video.": "streamencはフレームをGStreamerパイプライン（利用できない場合はffmpeg）に流し込み、エンコードした動画を書き出します。",

		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Error: %s":                     "エラー: %s",

		// Encode command
		"Encode a directory of images or a test pattern":                          "画像ディレクトリまたはテストパターンをエンコード",
		"YAML configuration file (flags override it)":                             "YAML設定ファイル（フラグが優先されます）",
		"Directory of images, encoded in path order":                              "画像ディレクトリ（パス順にエンコード）",
		"Generate a test pattern with this many frames instead of reading images": "画像の代わりに指定フレーム数のテストパターンを生成",
		"Encode the images in reverse order":                                      "画像を逆順にエンコード",
		"Number of passes over the images":                                        "画像を繰り返す回数",
		"Output video file path":                                                  "出力動画ファイルのパス",
		"Output execution summary to file (Markdown format)":                      "実行サマリーをファイルに出力（Markdown形式）",
		"Do not inspect the output file":                                          "出力ファイルを検査しない",
		"Frames per second":                                                       "フレームレート（fps）",
		"Video width (default: size of the first image)":                          "動画の幅（デフォルト: 最初の画像のサイズ）",
		"Video height (default: size of the first image)":                         "動画の高さ（デフォルト: 最初の画像のサイズ）",
		"Encoder element (x264enc, x265enc, vp8enc, vp9enc, av1enc, ...)":         "エンコーダー要素（x264enc, x265enc, vp8enc, vp9enc, av1enc など）",
		"Muxer element (mp4mux, qtmux, matroskamux, webmmux, avimux)":             "マルチプレクサ要素（mp4mux, qtmux, matroskamux, webmmux, avimux）",
		"Pixel format fed into the pipeline (BGRx, BGRA, RGBx, RGBA, RGB, BGR)":   "パイプラインに渡すピクセル形式（BGRx, BGRA, RGBx, RGBA, RGB, BGR）",
		"Caps placed after the encoder (empty for none)":                          "エンコーダーの後に置くcaps（空なら無し）",
		"Encoder element property as key=value (repeatable)":                      "エンコーダー要素のプロパティ key=value（複数指定可）",
		"Muxer element property as key=value (repeatable)":                        "マルチプレクサ要素のプロパティ key=value（複数指定可）",
		"CRF 0-51 for the ffmpeg backend (0 = default)":                           "ffmpegバックエンドのCRF 0-51（0 = デフォルト）",
		"Target bitrate in kbps for the ffmpeg backend":                           "ffmpegバックエンドの目標ビットレート（kbps）",
		"Encoding backend (auto, gstreamer, ffmpeg)":                              "エンコードバックエンド（auto, gstreamer, ffmpeg）",
		"Fall back to the other backend when the chosen one is unavailable":       "指定したバックエンドが使えない場合に他方へ切り替える",
		"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)":                   "ffmpegのパス（未指定時はFFMPEG_PATH、次にPATH）",
		"Frames queued before the producer blocks":                                "送信側がブロックするまでにキューできるフレーム数",
		"Maximum wait for the pipeline to flush":                                  "パイプラインのフラッシュを待つ最大時間",
		"Enable debug output":                                                     "デバッグ出力を有効化",
		"Directory for debug output":                                              "デバッグ出力先ディレクトリ",
		"Save every n-th frame to the debug directory":                            "nフレームごとにデバッグディレクトリへ保存",
		"Log level (debug, info, warn, error)":                                    "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                 "すべてのログ出力を抑制",
		"test pattern (%d frames)":                                                "テストパターン（%d フレーム）",

		// Probe command
		"Show the video track of an MP4 file": "MP4ファイルの映像トラックを表示",
		"probe requires exactly one file":     "probeにはファイルを1つだけ指定してください",
		"Codec: %s":                           "コーデック: %s",
		"Size: %dx%d":                         "サイズ: %dx%d",
		"Samples: %d":                         "サンプル数: %d",
		"Duration: %d ms":                     "長さ: %d ms",
		"Frame rate: %.2f fps":                "フレームレート: %.2f fps",
		"Fragmented: %t":                      "フラグメント化: %t",
		"File size: %d bytes":                 "ファイルサイズ: %d バイト",

		// Summary labels
		"Encoding Summary": "エンコードサマリー",
		"Item":             "項目",
		"Value":            "値",
		"Run ID":           "実行ID",
		"Settings":         "設定",
		"Frame Rate":       "フレームレート",
		"Size":             "サイズ",
		"Encoder":          "エンコーダー",
		"Muxer":            "マルチプレクサ",
		"Pixel Format":     "ピクセル形式",
		"Caps":             "caps",
		"Quality":          "品質",
		"Bitrate":          "ビットレート",
		"Video":            "動画",
		"Source Frames":    "入力フレーム数",
		"Encoded Frames":   "エンコード済みフレーム数",
		"Duration":         "長さ",
		"Encoding Time":    "エンコード時間",
		"File Size":        "ファイルサイズ",
		"Container":        "コンテナ",
		"Codec":            "コーデック",
		"Samples":          "サンプル数",
		"Fragmented":       "フラグメント化",
		"Yes":              "はい",
		"No":               "いいえ",
		"Generated at":     "生成日時",
	})
}
