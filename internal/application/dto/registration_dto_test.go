package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain/content"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func validPerson() entity.Person {
	return entity.Person{
		FullName:      "Muhammad Rizki",
		NIK:           "3273010101990001",
		BirthPlace:    "Bandung",
		BirthDate:     "1999-01-01",
		Occupation:    "Guru",
		Address:       "Jl. Merdeka No. 10, Bandung",
		Phone:         "081234567890",
		FatherName:    "Abdullah",
		MaritalStatus: entity.MaritalSingle,
	}
}

func validSchedule() entity.Schedule {
	return entity.Schedule{Date: "2026-04-18", Time: "09:00", Venue: content.VenueKUA}
}

func validDraft() dto.RegistrationDraft {
	bride := validPerson()
	bride.FullName = "Aisyah Putri"
	bride.NIK = "3273014101000002"
	return dto.RegistrationDraft{Groom: validPerson(), Bride: bride, Schedule: validSchedule()}
}

func TestValidatePerson_Valid(t *testing.T) {
	assert.NoError(t, dto.ValidatePerson(validPerson(), now))
}

func TestValidatePerson_FieldErrors(t *testing.T) {
	p := validPerson()
	p.NIK = "12345"
	p.BirthDate = "01-01-1999"
	p.Phone = "12"
	p.MaritalStatus = "menikah"

	errs := dto.FieldErrors(dto.ValidatePerson(p, now))
	assert.Equal(t, "NIK harus 16 digit angka", errs["nik"])
	assert.Equal(t, "format tanggal harus YYYY-MM-DD", errs["birth_date"])
	assert.Equal(t, "nomor telepon tidak valid", errs["phone"])
	assert.Equal(t, "status perkawinan tidak dikenal", errs["marital_status"])
	assert.NotContains(t, errs, "full_name")
}

func TestValidatePerson_TooYoung(t *testing.T) {
	p := validPerson()
	p.BirthDate = "2008-01-01" // 18 at `now`

	errs := dto.FieldErrors(dto.ValidatePerson(p, now))
	assert.Equal(t, "usia minimal 19 tahun", errs["birth_date"])

	p.BirthDate = "2007-03-10" // turns 19 on `now`
	assert.NoError(t, dto.ValidatePerson(p, now))
}

func TestValidatePerson_RequiredFields(t *testing.T) {
	errs := dto.FieldErrors(dto.ValidatePerson(entity.Person{}, now))
	for _, f := range []string{"full_name", "nik", "birth_place", "birth_date", "address", "phone", "father_name", "marital_status"} {
		assert.Contains(t, errs, f)
	}
	assert.NotContains(t, errs, "occupation", "occupation is optional")
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, dto.ValidateSchedule(validSchedule(), now))

	today := validSchedule()
	today.Date = "2026-03-10"
	assert.NoError(t, dto.ValidateSchedule(today, now), "today is allowed")

	past := validSchedule()
	past.Date = "2026-03-09"
	assert.Equal(t, "tanggal akad tidak boleh di masa lalu", dto.FieldErrors(dto.ValidateSchedule(past, now))["date"])

	badTime := validSchedule()
	badTime.Time = "9 pagi"
	assert.Contains(t, dto.FieldErrors(dto.ValidateSchedule(badTime, now)), "time")

	badVenue := validSchedule()
	badVenue.Venue = "pantai"
	assert.Contains(t, dto.FieldErrors(dto.ValidateSchedule(badVenue, now)), "venue")
}

func TestValidateSchedule_OutsideOfficeNeedsAddress(t *testing.T) {
	s := validSchedule()
	s.Venue = content.VenueLuarKUA

	errs := dto.FieldErrors(dto.ValidateSchedule(s, now))
	assert.Contains(t, errs, "address")

	s.Address = "Masjid Agung, Jl. Asia Afrika"
	assert.NoError(t, dto.ValidateSchedule(s, now))
}

func TestDraft_FirstIncompleteStep(t *testing.T) {
	d := dto.RegistrationDraft{}
	assert.Equal(t, dto.StepGroom, d.FirstIncompleteStep(now))

	d.Groom = validPerson()
	assert.Equal(t, dto.StepBride, d.FirstIncompleteStep(now))

	d = validDraft()
	d.Schedule = entity.Schedule{}
	assert.Equal(t, dto.StepSchedule, d.FirstIncompleteStep(now))

	d = validDraft()
	assert.Equal(t, dto.StepConfirm, d.FirstIncompleteStep(now))
}

func TestDraft_UnknownStep(t *testing.T) {
	err := validDraft().ValidateStep("saksi", now)
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrUnknownStep)
	assert.Equal(t, map[string]string{"form": dto.ErrUnknownStep.Error()}, dto.FieldErrors(err))
}

func TestStatusUpdateRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.StatusUpdateRequest{Status: entity.StatusVerified}.Validate())

	errs := dto.FieldErrors(dto.StatusUpdateRequest{Status: entity.StatusRejected}.Validate())
	assert.Equal(t, "alasan penolakan wajib diisi", errs["note"])

	assert.NoError(t, dto.StatusUpdateRequest{Status: entity.StatusRejected, Note: "Berkas N1 belum ada"}.Validate())

	errs = dto.FieldErrors(dto.StatusUpdateRequest{Status: entity.StatusSubmitted}.Validate())
	assert.Contains(t, errs, "status", "submitted is not a target status")
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.LoginRequest{Email: "staf@kua.example", Password: "rahasia"}.Validate())

	errs := dto.FieldErrors(dto.LoginRequest{Email: "bukan-email"}.Validate())
	assert.Equal(t, "format email tidak valid", errs["email"])
	assert.Equal(t, "kata sandi wajib diisi", errs["password"])
}

func TestCountByStatus(t *testing.T) {
	regs := []entity.Registration{
		{Status: entity.StatusSubmitted},
		{Status: entity.StatusSubmitted},
		{Status: entity.StatusVerified},
		{Status: entity.StatusScheduled},
		{Status: "unknown"},
	}
	c := dto.CountByStatus(regs)
	assert.Equal(t, 5, c.Total)
	assert.Equal(t, 2, c.Submitted)
	assert.Equal(t, 1, c.Verified)
	assert.Equal(t, 1, c.Scheduled)
	assert.Zero(t, c.Rejected)
	assert.Zero(t, c.Completed)
}

func TestFieldErrors_Nil(t *testing.T) {
	assert.Nil(t, dto.FieldErrors(nil))
}
