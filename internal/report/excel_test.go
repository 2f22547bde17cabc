package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"roomdesk/internal/models"
)

func day(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWriteReservations(t *testing.T) {
	rooms := map[int64]*models.Room{
		1: {RoomID: 1, RoomName: "Garden View", PricePerDayPerPerson: 50, GuestCapacity: 2},
	}
	reservations := []models.ReservationRecord{
		{
			ReservationID:  "res-1",
			RoomID:         1,
			CustomerID:     "cust-1",
			ArrivalDate:    day("2024-06-07"),
			DepartureDate:  day("2024-06-09"),
			Status:         models.StatusConfirm,
			TotalPrice:     200,
			NumberOfGuests: 2,
			CreatedAt:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ReservationID:  "res-2",
			RoomID:         99, // not in the index, falls back to the id
			CustomerID:     "cust-2",
			ArrivalDate:    day("2024-07-01"),
			DepartureDate:  day("2024-07-03"),
			Status:         models.StatusCheckedOut,
			TotalPrice:     150,
			NumberOfGuests: 1,
			CreatedAt:      time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReservations(&buf, reservations, rooms))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)

	assert.Equal(t, "Reservation ID", rows[0][0])
	assert.Equal(t, "Status", rows[0][7])

	assert.Equal(t, "res-1", rows[1][0])
	assert.Equal(t, "Garden View", rows[1][1])
	assert.Equal(t, "2024-06-07", rows[1][3])
	assert.Equal(t, "2", rows[1][5]) // two nights

	assert.Equal(t, "99", rows[2][1])
	assert.Equal(t, string(models.StatusCheckedOut), rows[2][7])
}

func TestWriteReservationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReservations(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Reservation ID", rows[0][0])
}
