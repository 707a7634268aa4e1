// Package cli реализует команды bh.
//
// # Обзор
//
// Команды работают только через интерфейс client.Client и не знают
// про HTTP. Client создаётся лениво через ClientFunc: `bh md docs`
// и `bh completion` не требуют BOUNTYHUB_TOKEN.
//
// # Ключевые компоненты
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - job: delete, artifact download, artifact delete
//   - scan: dispatch
//   - blob: download, upload
//   - runner: registration token, registration command
//   - bhlast: create
//   - md: docs
//
// Каждая группа создаётся через фабричную функцию (NewJobCmd и т.д.),
// принимающую clientFn и outputFn.
//
// Обязательные флаги могут браться из переменных окружения
// (BOUNTYHUB_JOB_ID, BOUNTYHUB_WORKFLOW_ID и т.д.), явный флаг
// приоритетнее.
//
// ## Inputs
//
// --input-string KEY=VALUE и --input-bool KEY=true|false собираются
// в domain.Inputs через BuildInputs. Без флагов inputs — nil.
//
// ## Output
//
// Форматы text, json и yaml. Данные выводятся в stdout, сообщения
// (Success) — в stderr:
//
//	bh runner registration command --format json | jq -r .command
//
// ## Downloads
//
// Файл пишется во временный файл в целевой директории и
// переименовывается после успешной передачи.
package cli
