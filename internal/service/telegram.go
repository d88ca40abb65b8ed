package service

import "github.com/ilyadubrovsky/notenmeister/internal/export"

type Telegram interface {
	SendMessageWithOpts(id int64, message string, opts ...interface{}) error
	SendDocument(id int64, file *export.File, caption string) error
	Start()
	Stop()
}
