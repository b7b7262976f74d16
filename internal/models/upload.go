package models

// Upload: загруженный клиентом файл, живёт в памяти только в рамках запроса.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Result содержит PNG с прозрачным фоном и имя файла для скачивания.
type Result struct {
	Filename string
	PNG      []byte
}

// Size возвращает размер закодированного PNG.
func (r Result) Size() int64 {
	return int64(len(r.PNG))
}
