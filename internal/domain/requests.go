package domain

// DispatchScanRequest — тело запроса на запуск scan'а
// из последней ревизии workflow.
type DispatchScanRequest struct {
	// ScanName — имя scan'а, только [A-Za-z0-9_].
	ScanName string `json:"scanName"`

	// Inputs — значения переменных workflow.
	// Nil сериализуется как null.
	Inputs Inputs `json:"inputs"`
}

// UploadBlobFileRequest — запрос на загрузку файла в blob storage.
type UploadBlobFileRequest struct {
	// Path — путь назначения в blob storage, интерпретируется сервером.
	Path string `json:"path"`
}

// URLResponse — ответ с pre-signed URL для прямой передачи файла.
type URLResponse struct {
	URL string `json:"url"`
}

// CreatedResponse — ответ на создание ресурса.
type CreatedResponse struct {
	ID string `json:"id"`
}

// RunnerRegistration — регистрация runner'а, выданная сервером.
//
// Token — bearer-токен для агента runner'а. Никогда не создаётся локально.
type RunnerRegistration struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}
