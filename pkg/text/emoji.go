package text

import (
	"github.com/enescakir/emoji"
)

const (
	Ellipsis = "…"
)

var (
	EmojiSearch   = emoji.MagnifyingGlassTiltedLeft.String()
	EmojiUser     = emoji.BustInSilhouette.String()
	EmojiPosts    = emoji.Memo.String()
	EmojiNotFound = emoji.CrossMark.String()
	EmojiBusy     = emoji.HourglassNotDone.String()
)
