package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simkah-portal/internal/domain/content"
)

type serviceView struct {
	Code        string
	Name        string
	Description string
	Fee         string
}

type hoursView struct {
	Days   string
	Open   string
	Close  string
	Closed bool
}

func servicesView() []serviceView {
	out := []serviceView{}
	for _, s := range content.Services() {
		out = append(out, serviceView{Code: s.Code, Name: s.Name, Description: s.Description, Fee: s.FeeLabel()})
	}
	return out
}

func officeHoursView() []hoursView {
	out := []hoursView{}
	for _, h := range content.Hours() {
		out = append(out, hoursView{Days: h.Days, Open: h.Open, Close: h.Close, Closed: h.Closed()})
	}
	return out
}

// Home GET /
func (h *Handlers) Home(c *fiber.Ctx) error {
	return h.render(c, "home", fiber.Map{
		"Title":    "Beranda",
		"Services": servicesView(),
		"Hours":    officeHoursView(),
	})
}

// Services GET /layanan
func (h *Handlers) Services(c *fiber.Ctx) error {
	return h.render(c, "layanan", fiber.Map{"Title": "Layanan", "Services": servicesView()})
}

// Letters GET /surat
func (h *Handlers) Letters(c *fiber.Ctx) error {
	return h.render(c, "surat", fiber.Map{"Title": "Jenis Surat", "Letters": content.LetterTypes()})
}

// Hours GET /jadwal
func (h *Handlers) Hours(c *fiber.Ctx) error {
	return h.render(c, "jadwal", fiber.Map{"Title": "Jam Layanan", "Hours": officeHoursView()})
}
