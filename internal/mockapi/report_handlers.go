package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// HandleTicketVolume handles GET /reports/ticket-volume.
func (s *Server) HandleTicketVolume(w http.ResponseWriter, r *http.Request) {
	from, to := reportRange(r)
	WriteData(w, s.store.VolumeByCategory(from, to))
}

// HandleSLACompliance handles GET /reports/sla-compliance.
func (s *Server) HandleSLACompliance(w http.ResponseWriter, r *http.Request) {
	from, to := reportRange(r)
	WriteData(w, s.store.SLAComplianceReport(from, to))
}

// HandleAgentPerformance handles GET /reports/agent-performance.
func (s *Server) HandleAgentPerformance(w http.ResponseWriter, r *http.Request) {
	from, to := reportRange(r)
	WriteData(w, s.store.AgentPerformanceReport(from, to))
}

// HandleExportTickets handles GET /reports/export/tickets. Unlike
// every other endpoint this streams raw xlsx bytes, no envelope.
func (s *Server) HandleExportTickets(w http.ResponseWriter, r *http.Request) {
	tickets := s.store.FilteredTickets(parseFilters(r))

	book, err := buildTicketWorkbook(tickets)
	if err != nil {
		WriteError(w, err)
		return
	}

	filename := "tickets-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := book.Write(w); err != nil {
		s.logger.Error("writing export", "error", err)
	}
}

// buildTicketWorkbook renders tickets into a single-sheet workbook.
func buildTicketWorkbook(tickets []domain.Ticket) (*excelize.File, error) {
	book := excelize.NewFile()
	const sheet = "Tickets"
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Ticket Number", "Merchant", "Category", "Status", "Priority", "Title", "Date Raised", "SLA Deadline", "Assigned Agent", "Resolution Hours"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := book.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, ticket := range tickets {
		values := []any{
			ticket.TicketNumber,
			ticket.MerchantName,
			string(ticket.Category),
			string(ticket.Status),
			string(ticket.Priority),
			ticket.Title,
			ticket.DateRaised.Format(time.RFC3339),
			ticket.SLADeadline.Format(time.RFC3339),
			ticket.AssignedAgentName,
			resolutionCell(ticket),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := book.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return book, nil
}

func resolutionCell(ticket domain.Ticket) string {
	if ticket.ResolutionTime == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *ticket.ResolutionTime)
}

// HandleDashboardStats handles GET /dashboard/stats.
func (s *Server) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	WriteData(w, s.store.DashboardStats())
}

func reportRange(r *http.Request) (from, to string) {
	query := r.URL.Query()
	return query.Get("from"), query.Get("to")
}
