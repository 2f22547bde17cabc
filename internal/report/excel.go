// Package report renders reservation data as Excel workbooks for
// operators who want something they can open, sort and print.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"roomdesk/internal/models"
)

// sheetWriter wraps excelize with row-cursor bookkeeping so callers
// only deal with header/row slices.
type sheetWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

func newSheetWriter() *sheetWriter {
	return &sheetWriter{file: excelize.NewFile()}
}

func (w *sheetWriter) addSheet(name string) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

func (w *sheetWriter) writeHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

func (w *sheetWriter) writeRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

func (w *sheetWriter) save(wr io.Writer) error {
	return w.file.Write(wr)
}

func (w *sheetWriter) close() error {
	return w.file.Close()
}

var reservationColumns = []string{
	"Reservation ID",
	"Room",
	"Customer ID",
	"Arrival",
	"Departure",
	"Nights",
	"Guests",
	"Status",
	"Total Price",
	"Paid",
	"Created At",
}

// WriteReservations renders all reservations to a single-sheet workbook.
// Room names are resolved through the rooms index when available,
// otherwise the raw room id is written.
func WriteReservations(wr io.Writer, reservations []models.ReservationRecord, rooms map[int64]*models.Room) error {
	xw := newSheetWriter()
	defer xw.close()

	if err := xw.addSheet("Reservations"); err != nil {
		return err
	}
	if err := xw.writeHeader(reservationColumns); err != nil {
		return err
	}

	var total float64
	for i := range reservations {
		res := &reservations[i]
		roomName := strconv.FormatInt(res.RoomID, 10)
		if room, ok := rooms[res.RoomID]; ok && room.RoomName != "" {
			roomName = room.RoomName
		}

		row := []interface{}{
			res.ReservationID,
			roomName,
			res.CustomerID,
			res.ArrivalDate.Format(models.DateFormat),
			res.DepartureDate.Format(models.DateFormat),
			res.Nights(),
			res.NumberOfGuests,
			string(res.Status),
			res.TotalPrice,
			res.PaidAmount,
			res.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := xw.writeRow(row); err != nil {
			return fmt.Errorf("write reservation %s: %w", res.ReservationID, err)
		}
		total += res.TotalPrice
	}

	// Summary line under the table.
	if err := xw.writeRow(nil); err != nil {
		return err
	}
	if err := xw.writeRow([]interface{}{"Total", "", "", "", "", "", "", "", total}); err != nil {
		return err
	}

	return xw.save(wr)
}
