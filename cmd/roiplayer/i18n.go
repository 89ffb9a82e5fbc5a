// Package main provides localization for the roiplayer CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Traditional Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		// Commands
		"Play videos and follow a selected region with a tracker": "播放影片並追蹤選取的區域",
		"Play a video file, image directory or capture device":    "播放影片檔、圖片目錄或擷取裝置",
		"Show metadata of a video source":                         "顯示影片來源的中繼資料",
		"Show version information":                                "顯示版本資訊",
		"roiplayer version %s":                                    "roiplayer 版本 %s",

		// Play flags
		"YAML configuration file":                            "YAML 設定檔",
		"Region to track in frame pixels (x,y,w,h)":          "要追蹤的區域, 以幀像素表示 (x,y,w,h)",
		"Frame to start playing from":                        "開始播放的幀",
		"Render surface size (WxH)":                          "繪製區域大小 (寬x高)",
		"Zoom view size (WxH)":                               "放大視圖大小 (寬x高)",
		"Tracker algorithm (csrt, kcf, mil)":                 "追蹤演算法 (csrt, kcf, mil)",
		"Decoder (gocv, imageseq)":                           "解碼器 (gocv, imageseq)",
		"Frame rate of image sequences":                      "圖片序列的幀率",
		"Save zoom views as images":                          "將放大視圖儲存為圖片",
		"Directory for snapshots":                            "快照目錄",
		"Write a playback report to file (Markdown format)":  "將播放報告寫入檔案 (Markdown 格式)",
		"Log level (debug, info, warn, error)":               "日誌等級 (debug, info, warn, error)",
		"Suppress all log output":                            "隱藏所有日誌輸出",

		// Messages
		"Source argument is required": "需要來源參數",
		"Report saved to %s":          "報告已儲存至 %s",
		"Failed to write report: %s":  "寫入報告失敗: %s",

		// Probe output
		"Container: MP4 (%s, fragmented: %v)":            "容器: MP4 (%s, 分段: %v)",
		"Frame size: %dx%d":                              "幀大小: %dx%d",
		"Frames: %d at %.2f fps (%s)":                    "幀數: %d, %.2f fps (%s)",
		"Decoder reports %dx%d, %d frames at %.2f fps":   "解碼器回報 %dx%d, %d 幀, %.2f fps",
		"Live capture device":                            "即時擷取裝置",

		// Report content
		"Playback Report": "播放報告",
		"Source":          "來源",
		"Playback":        "播放",
		"Tracking":        "追蹤",
		"Snapshots":       "快照",
		"Item":            "項目",
		"Value":           "值",
		"Decoder":         "解碼器",
		"Frame Size":      "幀大小",
		"Frame Rate":      "幀率",
		"Frames":          "幀數",
		"Duration":        "長度",
		"Live":            "即時",
		"Frames Played":   "已播放幀數",
		"Last Frame":      "最後一幀",
		"Seeks":           "跳轉次數",
		"Wall Time":       "實際時間",
		"Ended By":        "結束原因",
		"end of stream":   "播放結束",
		"read error":      "讀取錯誤",
		"Interrupted":     "已中斷",
		"Tracker":         "追蹤器",
		"Tracker Arms":    "追蹤器啟動次數",
		"Lost Frames":     "失去目標幀數",
		"Zoom Frames":     "放大幀數",
		"Directory":       "目錄",
		"Written":         "已寫入",
		"Errors":          "錯誤",
		"N/A":             "不適用",
		"Generated by":    "產生者",
	})
}
