// Package content contiene las listas informativas estáticas de las páginas
// públicas: servicios con su tarifa, tipos de surat y horario de atención.
package content

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Lugar donde se celebra el akad (contrato matrimonial).
const (
	VenueKUA     = "kua"
	VenueLuarKUA = "luar_kua"
)

// Service un servicio que ofrece la oficina.
type Service struct {
	Code        string
	Name        string
	Description string
	Fee         decimal.Decimal
}

// FeeLabel devuelve la tarifa tal como se muestra al público.
func (s Service) FeeLabel() string {
	if s.Fee.IsZero() {
		return "Gratis"
	}
	return FormatRupiah(s.Fee)
}

// LetterType formulario o carta que el solicitante debe traer o puede pedir.
type LetterType struct {
	Code        string
	Name        string
	Description string
}

// OfficeHours horario de atención para un rango de días.
type OfficeHours struct {
	Days  string
	Open  string
	Close string
}

// Closed indica si la oficina no abre esos días.
func (h OfficeHours) Closed() bool {
	return h.Open == ""
}

var feeOutsideOffice = decimal.NewFromInt(600000)

var services = []Service{
	{Code: "nikah-kua", Name: "Nikah di Kantor KUA", Description: "Akad nikah di balai nikah KUA pada hari dan jam kerja.", Fee: decimal.Zero},
	{Code: "nikah-luar", Name: "Nikah di Luar Kantor KUA", Description: "Akad nikah di rumah, masjid, atau gedung, atau di luar jam kerja.", Fee: feeOutsideOffice},
	{Code: "rujuk", Name: "Pencatatan Rujuk", Description: "Pencatatan rujuk bagi pasangan yang bercerai talak raj'i.", Fee: decimal.Zero},
	{Code: "bimwin", Name: "Bimbingan Perkawinan", Description: "Bimbingan pranikah bagi calon pengantin.", Fee: decimal.Zero},
	{Code: "legalisir", Name: "Legalisir Buku Nikah", Description: "Legalisir salinan buku nikah untuk keperluan administrasi.", Fee: decimal.Zero},
	{Code: "duplikat", Name: "Duplikat Buku Nikah", Description: "Penerbitan duplikat buku nikah yang hilang atau rusak.", Fee: decimal.Zero},
}

var letterTypes = []LetterType{
	{Code: "N1", Name: "Surat Pengantar Perkawinan", Description: "Dari kelurahan/desa tempat tinggal calon pengantin."},
	{Code: "N2", Name: "Permohonan Kehendak Perkawinan", Description: "Diisi dan ditandatangani calon pengantin."},
	{Code: "N3", Name: "Surat Persetujuan Calon Pengantin", Description: "Persetujuan kedua calon pengantin."},
	{Code: "N4", Name: "Surat Izin Orang Tua", Description: "Wajib bagi calon pengantin di bawah 21 tahun."},
	{Code: "N6", Name: "Surat Keterangan Kematian Suami/Istri", Description: "Bagi calon pengantin berstatus cerai mati."},
	{Code: "RN", Name: "Surat Rekomendasi Nikah", Description: "Bagi calon pengantin yang menikah di luar wilayah KUA domisili."},
}

var officeHours = []OfficeHours{
	{Days: "Senin - Kamis", Open: "07.30", Close: "16.00"},
	{Days: "Jumat", Open: "07.30", Close: "16.30"},
	{Days: "Sabtu - Minggu", Open: "", Close: ""},
}

// Services devuelve la lista de servicios (copia).
func Services() []Service {
	return append([]Service(nil), services...)
}

// LetterTypes devuelve los tipos de surat (copia).
func LetterTypes() []LetterType {
	return append([]LetterType(nil), letterTypes...)
}

// Hours devuelve el horario de atención (copia).
func Hours() []OfficeHours {
	return append([]OfficeHours(nil), officeHours...)
}

// FeeForVenue devuelve la tarifa del matrimonio según el lugar.
// Un lugar desconocido cuesta lo mismo que la oficina.
func FeeForVenue(venue string) decimal.Decimal {
	if venue == VenueLuarKUA {
		return feeOutsideOffice
	}
	return decimal.Zero
}

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah formatea un monto al estilo indonesio, ej. "Rp 600.000".
// Se descartan los decimales; en la práctica la rupia no tiene fracción.
func FormatRupiah(amount decimal.Decimal) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount.IntPart()))
}
