package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Player (info)
		"Opened %s: %d frames at %.2f fps":  "已開啟 %s: %d 幀, %.2f fps",
		"Playing from frame %d":             "從第 %d 幀開始播放",
		"Paused at frame %d":                "暫停於第 %d 幀",
		"Reset":                             "已重設",
		"Tracking cleared":                  "已清除追蹤",
		"Selected region %dx%d at (%d,%d)":  "已選取區域 %dx%d, 位置 (%d,%d)",
		"End of stream at frame %d":         "於第 %d 幀播放結束",
		"Seeked to frame %d":                "已跳至第 %d 幀",
		"Ignoring zero-area region":         "忽略面積為零的區域",
		"Interrupted, shutting down...":     "已中斷, 正在關閉...",
		"Report saved to %s":                "報告已儲存至 %s",

		// Source
		"Released %s":                     "已釋放 %s",
		"Container probe of %s failed: %s": "%s 的容器探測失敗: %s",

		// Clock
		"Armed at %v":             "計時器已啟動, 間隔 %v",
		"Disarmed after %d ticks": "計時器已停止, 共 %d 次",

		// Tracker
		"Tracker armed on %dx%d region at (%d,%d)": "追蹤器已啟動, 區域 %dx%d, 位置 (%d,%d)",
		"Tracker lost the target":                  "追蹤器失去目標",
		"Tracker recovered after %d frames":        "追蹤器在 %d 幀後恢復",
		"Tracker disarmed":                         "追蹤器已停止",

		// Warnings
		"Failed to read frame: %s":     "讀取幀失敗: %s",
		"Failed to arm tracker: %s":    "啟動追蹤器失敗: %s",
		"Failed to write snapshot: %s": "寫入快照失敗: %s",
		"Failed to close tracker: %s":  "關閉追蹤器失敗: %s",
		"Failed to rewind: %s":         "倒回失敗: %s",
		"Failed to seek to %d: %s":     "跳至第 %d 幀失敗: %s",
		"Failed to release %s: %s":     "釋放 %s 失敗: %s",

		// Errors
		"Failed to open %s: %s":      "開啟 %s 失敗: %s",
		"Failed to write report: %s": "寫入報告失敗: %s",
	})
}
