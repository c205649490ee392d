// Package store хранит упорядоченный список записей в памяти и зеркалирует
// его в одну ячейку долговременного хранилища.
//
// В ячейке всегда лежит весь список JSON-массивом. Каждое изменение
// перезаписывает ее целиком, частичных записей нет. Hydrate читает ячейку
// один раз при старте: отсутствующее или испорченное значение дает пустой
// список, а ошибка чтения возвращается вызывающему.
//
// У Store ровно один владелец. Блокировок нет: один Store (и один ключ
// ячейки) нельзя использовать из нескольких горутин одновременно.
package store
