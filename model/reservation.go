// model/reservation.go
package model

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pendente"
	ReservationFulfilled ReservationStatus = "concluida"
	ReservationCancelled ReservationStatus = "cancelada"
	ReservationExpired   ReservationStatus = "expirada"
)

type Reservation struct {
	ID         int64             `json:"id" db:"id"`
	UserID     int64             `json:"usuario_id" db:"usuario_id"`
	BookID     int64             `json:"livro_id" db:"livro_id"`
	ReservedAt time.Time         `json:"data_reserva" db:"data_reserva"`
	Deadline   time.Time         `json:"data_limite" db:"data_limite"`
	Status     ReservationStatus `json:"status" db:"status"`
	Priority   int               `json:"prioridade" db:"prioridade"`
}
