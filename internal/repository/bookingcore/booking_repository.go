package bookingcore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"skyVoyage/domain"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingCoreConfig struct {
	BaseURL string
}

// BookingCoreRepository calls the booking backend for check-in lookup and
// seat assignment. Unlike the personalization path, failures here are meant
// to reach the user.
type BookingCoreRepository struct {
	bookingConfig BookingCoreConfig
	client        *http.Client
}

func NewBookingCoreRepository(cfg BookingCoreConfig) *BookingCoreRepository {
	return &BookingCoreRepository{
		bookingConfig: cfg,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

type findRequest struct {
	PNR   string `json:"pnr"`
	Email string `json:"email"`
}

type selectSeatRequest struct {
	PNR      string `json:"pnr"`
	FlightID int    `json:"flight_id"`
	SeatID   string `json:"seat_id"`
}

type upstreamError struct {
	Detail string `json:"detail"`
}

func (r *BookingCoreRepository) FindBooking(ctx context.Context, pnr, email, token string) (*domain.CheckinRecord, error) {
	body, status, err := r.post(ctx, "/checkin/find", token, findRequest{PNR: pnr, Email: email})
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound || status == http.StatusBadRequest {
		detail := upstreamDetail(body)
		if detail == "" {
			detail = "please check your PNR and email"
		}
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, detail)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("checkin lookup returned status %d", status)
	}

	var record domain.CheckinRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode checkin record: %w", err)
	}

	return &record, nil
}

func (r *BookingCoreRepository) AssignSeat(ctx context.Context, pnr string, flightID int, seatID, token string) (*domain.SeatAssignment, error) {
	body, status, err := r.post(ctx, "/checkin/select-seat", token, selectSeatRequest{
		PNR:      pnr,
		FlightID: flightID,
		SeatID:   seatID,
	})
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		detail := upstreamDetail(body)
		if detail == "" {
			detail = fmt.Sprintf("seat assignment returned status %d", status)
		}
		// A conflict is a normal answer, not a transport failure.
		return &domain.SeatAssignment{Success: false, Message: detail}, nil
	}

	var assignment domain.SeatAssignment
	if err := json.Unmarshal(body, &assignment); err != nil {
		return nil, fmt.Errorf("decode seat assignment: %w", err)
	}

	return &assignment, nil
}

func (r *BookingCoreRepository) post(ctx context.Context, path, token string, payload any) ([]byte, int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	endpoint := fmt.Sprintf("%s%s?token=%s",
		r.bookingConfig.BaseURL, path, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, res.StatusCode, nil
}

func upstreamDetail(body []byte) string {
	var e upstreamError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Detail
}
