package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":               "パイプラインを開始します",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Output saved to %s":              "出力を %s に保存しました",
		"Failed to write summary: %s":     "サマリーの書き込みに失敗しました: %s",

		// Source stage
		"Found %d images in %s (%dx%d), %d frames":  "%[2]s に %[1]d 枚の画像 (%[3]dx%[4]d)、%[5]d フレーム",
		"Generating %d test pattern frames (%dx%d)": "テストパターンを %d フレーム生成します (%dx%d)",
		"Decoding %s":                               "%s をデコード中",
		"Failed to load frames: %s":                 "フレームの読み込みに失敗しました: %s",

		// Encode stage
		"Encoding %d frames at %dx%d, %g fps with %s": "%d フレームを %dx%d、%g fps、%s でエンコードします",
		"Video encoded: %d frames, %d ms":             "動画をエンコードしました: %d フレーム, %d ms",
		"Failed to encode video: %s":                  "動画のエンコードに失敗しました: %s",
		"No frames were encoded":                      "エンコードされたフレームがありません",

		// Probe stage
		"Probed %s: %s %dx%d, %d samples, %d ms": "%s を検査: %s %dx%d, %d サンプル, %d ms",
		"Skipping track inspection for %s":       "%s のトラック検査をスキップします",
		"Failed to inspect %s: %s":               "%s の検査に失敗しました: %s",
		"Failed to inspect output: %s":           "出力の検査に失敗しました: %s",

		// Streaming worker
		"Encoding %s with %s backend (%s)":           "%s を %s バックエンドでエンコード中 (%s)",
		"Encoded %d frames to %s in %d ms":           "%d フレームを %s にエンコードしました (%d ms)",
		"Encoding failed: %s":                        "エンコードに失敗しました: %s",
		"Encoding cancelled, output not finalized":   "エンコードがキャンセルされました。出力は確定していません",
		"Channel closed after %d frames, finalizing": "%d フレーム後にチャネルが閉じられました。確定処理中",
		"Skipping nil frame":                         "nil フレームをスキップします",
		"Abort failed: %s":                           "中止に失敗しました: %s",
		"Failed to save debug frame %d: %s":          "デバッグフレーム %d の保存に失敗しました: %s",
		"Failed to save debug settings: %s":          "デバッグ設定の保存に失敗しました: %s",
		"Failed to save debug pipeline: %s":          "デバッグパイプラインの保存に失敗しました: %s",

		// Backend selection
		"%s encoder not available, falling back to %s": "%s エンコーダーが利用できないため %s にフォールバックします",

		// GStreamer backend
		"Pipeline: %s":                      "パイプライン: %s",
		"Pipeline state changed: %s -> %s":  "パイプラインの状態が変化: %s -> %s",
		"Pipeline warning: %s":              "パイプラインの警告: %s",
		"Pipeline error: %s":                "パイプラインのエラー: %s",
		"Pipeline finished after %d frames": "%d フレームでパイプラインが終了しました",
		"End of stream reached the sink":    "ストリーム終端がシンクに到達しました",
		"Failed to stop pipeline: %s":       "パイプラインの停止に失敗しました: %s",
		"appsrc needs data (%d bytes)":      "appsrc がデータを要求 (%d バイト)",
		"appsrc queue full":                 "appsrc のキューが満杯です",
		"appsrc rejected end of stream: %s": "appsrc がストリーム終端を拒否しました: %s",

		// ffmpeg backend
		"Running %s %s":                                            "%s %s を実行中",
		"ffmpeg finished after %d frames":                          "%d フレームで ffmpeg が終了しました",
		"Element properties are not applied by the ffmpeg backend": "要素プロパティは ffmpeg バックエンドでは適用されません",
	})
}
