// Package webhttp реализует веб-интерфейс удаления фона: одна страница загрузки
// и один обработчик на том же пути. Эндпоинты:
//   - GET / — форма загрузки.
//   - POST / — multipart-поле file (png/jpg/jpeg), ответ PNG с прозрачным фоном
//     как вложение <имя>_rmbg.png. Ошибки приходят JSON'ом {"error": ...}, если
//     запрос помечен X-Requested-With: XMLHttpRequest, иначе перерисовывается форма.
//   - GET /health — состояние сервиса и бэкенда удаления фона.
package webhttp
