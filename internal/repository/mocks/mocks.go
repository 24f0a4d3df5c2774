// Package mocks holds testify mocks of the repository contracts.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

var (
	_ repository.UserRepository           = (*UserRepository)(nil)
	_ repository.CaregiverRepository      = (*CaregiverRepository)(nil)
	_ repository.AvailabilityRepository   = (*AvailabilityRepository)(nil)
	_ repository.MessageRepository        = (*MessageRepository)(nil)
	_ repository.AppointmentRepository    = (*AppointmentRepository)(nil)
	_ repository.MedicalNoteRepository    = (*MedicalNoteRepository)(nil)
	_ repository.ServiceRequestRepository = (*ServiceRequestRepository)(nil)
	_ repository.AuthorRepository         = (*AuthorRepository)(nil)
	_ repository.BookRepository           = (*BookRepository)(nil)
)

type Projector struct {
	mock.Mock
}

func (m *Projector) Project(ctx context.Context, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	args := m.Called(ctx, ids, fields)
	out, _ := args.Get(0).(map[uuid.UUID]map[string]interface{})
	return out, args.Error(1)
}

type UserRepository struct {
	Projector
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type CaregiverRepository struct {
	Projector
}

func (m *CaregiverRepository) Create(ctx context.Context, caregiver *model.Caregiver) error {
	return m.Called(ctx, caregiver).Error(0)
}

func (m *CaregiverRepository) Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	args := m.Called(ctx, id)
	caregiver, _ := args.Get(0).(*model.Caregiver)
	return caregiver, args.Error(1)
}

func (m *CaregiverRepository) GetByEmail(ctx context.Context, email string) (*model.Caregiver, error) {
	args := m.Called(ctx, email)
	caregiver, _ := args.Get(0).(*model.Caregiver)
	return caregiver, args.Error(1)
}

func (m *CaregiverRepository) List(ctx context.Context, sort model.Sort) ([]*model.Caregiver, error) {
	args := m.Called(ctx, sort)
	caregivers, _ := args.Get(0).([]*model.Caregiver)
	return caregivers, args.Error(1)
}

func (m *CaregiverRepository) Update(ctx context.Context, id uuid.UUID, patch model.CaregiverPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CaregiverRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CaregiverRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type AvailabilityRepository struct {
	mock.Mock
}

func (m *AvailabilityRepository) List(ctx context.Context, caregiverID uuid.UUID) ([]*model.Availability, error) {
	args := m.Called(ctx, caregiverID)
	entries, _ := args.Get(0).([]*model.Availability)
	return entries, args.Error(1)
}

func (m *AvailabilityRepository) Add(ctx context.Context, entry *model.Availability) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AvailabilityRepository) Replace(ctx context.Context, entry *model.Availability) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AvailabilityRepository) Remove(ctx context.Context, caregiverID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, caregiverID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) List(ctx context.Context, owner model.OwnerKind, ownerID uuid.UUID, filter model.MessageFilter) ([]*model.Message, error) {
	args := m.Called(ctx, owner, ownerID, filter)
	msgs, _ := args.Get(0).([]*model.Message)
	return msgs, args.Error(1)
}

func (m *MessageRepository) Add(ctx context.Context, owner model.OwnerKind, msg *model.Message) (int64, error) {
	args := m.Called(ctx, owner, msg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, owner, ownerID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) Remove(ctx context.Context, owner model.OwnerKind, ownerID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, owner, ownerID, id)
	return args.Get(0).(int64), args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return m.Called(ctx, appt).Error(0)
}

func (m *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*model.Appointment)
	return appt, args.Error(1)
}

func (m *AppointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	args := m.Called(ctx, filter)
	appts, _ := args.Get(0).([]*model.Appointment)
	return appts, args.Error(1)
}

func (m *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, patch model.AppointmentPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MedicalNoteRepository struct {
	mock.Mock
}

func (m *MedicalNoteRepository) Create(ctx context.Context, note *model.MedicalNote) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MedicalNoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalNote, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*model.MedicalNote)
	return note, args.Error(1)
}

func (m *MedicalNoteRepository) List(ctx context.Context, filter model.MedicalNoteFilter) ([]*model.MedicalNote, error) {
	args := m.Called(ctx, filter)
	notes, _ := args.Get(0).([]*model.MedicalNote)
	return notes, args.Error(1)
}

func (m *MedicalNoteRepository) Update(ctx context.Context, id uuid.UUID, patch model.MedicalNotePatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MedicalNoteRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type ServiceRequestRepository struct {
	mock.Mock
}

func (m *ServiceRequestRepository) Create(ctx context.Context, req *model.ServiceRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *ServiceRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*model.ServiceRequest)
	return req, args.Error(1)
}

func (m *ServiceRequestRepository) List(ctx context.Context, filter model.ServiceRequestFilter) ([]*model.ServiceRequest, error) {
	args := m.Called(ctx, filter)
	reqs, _ := args.Get(0).([]*model.ServiceRequest)
	return reqs, args.Error(1)
}

func (m *ServiceRequestRepository) Update(ctx context.Context, id uuid.UUID, patch model.ServiceRequestPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ServiceRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type AuthorRepository struct {
	Projector
}

func (m *AuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return m.Called(ctx, author).Error(0)
}

func (m *AuthorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	args := m.Called(ctx, id)
	author, _ := args.Get(0).(*model.Author)
	return author, args.Error(1)
}

func (m *AuthorRepository) List(ctx context.Context, sort model.Sort) ([]*model.Author, error) {
	args := m.Called(ctx, sort)
	authors, _ := args.Get(0).([]*model.Author)
	return authors, args.Error(1)
}

func (m *AuthorRepository) Update(ctx context.Context, id uuid.UUID, patch model.AuthorPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AuthorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) Create(ctx context.Context, book *model.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *BookRepository) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*model.Book)
	return book, args.Error(1)
}

func (m *BookRepository) List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error) {
	args := m.Called(ctx, filter)
	books, _ := args.Get(0).([]*model.Book)
	return books, args.Error(1)
}

func (m *BookRepository) Update(ctx context.Context, id uuid.UUID, patch model.BookPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BookRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
