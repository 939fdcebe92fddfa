package mailparse

import (
	"github.com/emersion/go-message/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func init() {
	// Register GBK so undeclared-by-default Chinese marketing mail (QQ/163
	// senders) decodes instead of failing with "unhandled charset".
	charset.RegisterEncoding("gbk", simplifiedchinese.GBK)
}
