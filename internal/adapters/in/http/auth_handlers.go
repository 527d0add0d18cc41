package http

import (
	"net/http"
	"time"

	"moving/internal/core/application/usecases/commands"
	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"
	"moving/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type SendCodeRequest struct {
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

type SendCodeResponse struct {
	RequestID string    `json:"request_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegistrationRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      string          `json:"role"`
	Vehicle   *VehicleRequest `json:"vehicle"`
}

type VehicleRequest struct {
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	WorkerCount int    `json:"worker_count"`
}

type VerifyCodeRequest struct {
	RequestID    string               `json:"request_id"`
	Phone        string               `json:"phone"`
	Code         string               `json:"code"`
	Registration *RegistrationRequest `json:"registration"`
	GuestOrderID *string              `json:"guest_order_id"`
}

type VerifyCodeResponse struct {
	Token      string         `json:"token"`
	ExpiresAt  time.Time      `json:"expires_at"`
	User       UserResponse   `json:"user"`
	Registered bool           `json:"registered"`
	Order      *OrderResponse `json:"order,omitempty"`
	LinkError  string         `json:"link_error,omitempty"`
}

// SendCode handles POST /api/v1/auth/code.
func (s *Server) SendCode(c echo.Context) error {
	var req SendCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	purpose, err := otp.ParsePurpose(req.Purpose)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSendCodeCommand(req.Phone, purpose)
	if err != nil {
		return err
	}

	res, err := s.h.SendCode.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, SendCodeResponse{RequestID: res.RequestID, ExpiresAt: res.ExpiresAt})
}

// VerifyCode handles POST /api/v1/auth/verify. A failed guest order link
// does not fail the login; it is reported in link_error.
func (s *Server) VerifyCode(c echo.Context) error {
	var req VerifyCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	var registration *commands.Registration
	if r := req.Registration; r != nil {
		role, err := kernel.ParseRole(r.Role)
		if err != nil {
			return err
		}
		registration = &commands.Registration{FirstName: r.FirstName, LastName: r.LastName, Role: role}
		if r.Vehicle != nil {
			registration.Vehicle = &user.Vehicle{
				Model:       r.Vehicle.Model,
				PlateNumber: r.Vehicle.PlateNumber,
				WorkerCount: r.Vehicle.WorkerCount,
			}
		}
	}

	var guestOrderID *kernel.UUID
	if req.GuestOrderID != nil {
		id, err := kernel.UUIDFromString(*req.GuestOrderID)
		if err != nil {
			return err
		}
		guestOrderID = &id
	}

	cmd, err := commands.NewVerifyCodeCommand(req.RequestID, req.Phone, req.Code, registration, guestOrderID)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := s.h.VerifyCode.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	out := VerifyCodeResponse{
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
		User:       newUserResponse(res.User),
		Registered: res.Registered,
	}
	if res.LinkError != nil {
		out.LinkError = res.LinkError.Error()
	}
	if res.Order != nil {
		view, err := s.orderView(c, res.User.Actor(), res.Order.ID())
		if err != nil {
			return err
		}
		out.Order = &view
	}

	status := http.StatusOK
	if res.Registered {
		status = http.StatusCreated
	}
	return c.JSON(status, out)
}

func (s *Server) orderView(c echo.Context, actor kernel.Actor, id int64) (OrderResponse, error) {
	q, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return OrderResponse{}, err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return OrderResponse{}, err
	}
	return newOrderResponse(view), nil
}
