package global

import (
	"github.com/lumapix/photo-share-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Lumapix Photo Share Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
