package registration

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/registration/model"
	"churchfinder_backend/internals/helpers/geocode"
)

type fakeStore struct {
	drafts   map[uuid.UUID]*model.RegistrationModel
	churches []*churchModel.ChurchModel
	links    [][2]uuid.UUID
	roles    map[uuid.UUID]string
	imageURL map[uuid.UUID]string

	linkErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		drafts:   map[uuid.UUID]*model.RegistrationModel{},
		roles:    map[uuid.UUID]string{},
		imageURL: map[uuid.UUID]string{},
	}
}

func (s *fakeStore) GetDraft(_ context.Context, userID uuid.UUID) (*model.RegistrationModel, error) {
	return s.drafts[userID], nil
}

func (s *fakeStore) SaveDraft(_ context.Context, d *model.RegistrationModel) error {
	if d.RegistrationID == uuid.Nil {
		d.RegistrationID = uuid.New()
	}
	s.drafts[d.RegistrationUserID] = d
	return nil
}

func (s *fakeStore) CreateChurch(_ context.Context, c *churchModel.ChurchModel) error {
	c.ChurchID = uuid.New()
	s.churches = append(s.churches, c)
	return nil
}

func (s *fakeStore) SetChurchImageURL(_ context.Context, churchID uuid.UUID, url string) error {
	s.imageURL[churchID] = url
	return nil
}

func (s *fakeStore) LinkAdmin(_ context.Context, userID, churchID uuid.UUID) error {
	if s.linkErr != nil {
		return s.linkErr
	}
	s.links = append(s.links, [2]uuid.UUID{userID, churchID})
	return nil
}

func (s *fakeStore) ElevateRole(_ context.Context, userID uuid.UUID, role string) error {
	s.roles[userID] = role
	return nil
}

type fakeGeocoder struct {
	calls  int
	result geocode.Result
	err    error
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (geocode.Result, error) {
	g.calls++
	if g.err != nil {
		return geocode.Result{}, g.err
	}
	return g.result, nil
}

type fakeImages struct {
	tempKeys  []string
	rekeyed   []string
	uploadErr error
	rekeyErr  error
}

func (f *fakeImages) UploadRegistrationImage(draftID, filename string, _ io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := "registration-temp/" + draftID + "/" + filename
	f.tempKeys = append(f.tempKeys, key)
	return key, nil
}

func (f *fakeImages) RekeyChurchImage(tempKey, churchID string) (string, error) {
	if f.rekeyErr != nil {
		return "", f.rekeyErr
	}
	f.rekeyed = append(f.rekeyed, tempKey)
	return "https://cdn.example.com/church-images/" + churchID + "/main.webp", nil
}

func newTestService(store *fakeStore, geo *fakeGeocoder, images *fakeImages) *Service {
	svc := NewService(store, geo, images)
	svc.logf = func(string, ...any) {}
	return svc
}

func completeForm() model.FormData {
	return model.FormData{
		Phone:   "310-555-0142",
		Name:    "Debre Genet St. Mary",
		Address: "123 Crenshaw Blvd",
		City:    "Los Angeles",
		State:   "CA",
		Zip:     "90008",
		ServiceSchedule: []model.ScheduleEntry{
			{Day: "Sunday", StartTime: "09:00", EndTime: "11:00", Repeat: "Every Week"},
		},
		Languages: []string{"Amharic"},
		Services:  []string{"Sunday School"},
	}
}

func seedDraft(store *fakeStore, userID uuid.UUID, step string, form model.FormData) {
	store.drafts[userID] = &model.RegistrationModel{
		RegistrationID:     uuid.New(),
		RegistrationUserID: userID,
		RegistrationStep:   step,
		RegistrationForm:   datatypes.NewJSONType(form),
	}
}

func TestGetDraftCreatesEmptyDraft(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGeocoder{}, &fakeImages{})
	userID := uuid.New()

	draft, err := svc.GetDraft(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StepAdminInfo, draft.RegistrationStep)
	assert.NotNil(t, store.drafts[userID])
}

func TestAdvanceGates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGeocoder{}, &fakeImages{})
	userID := uuid.New()
	seedDraft(store, userID, model.StepAdminInfo, model.FormData{})

	_, err := svc.Advance(context.Background(), userID)
	assert.ErrorIs(t, err, ErrPhoneRequired)
	assert.Equal(t, model.StepAdminInfo, store.drafts[userID].RegistrationStep, "failed gate keeps the step")

	form := store.drafts[userID].RegistrationForm.Data()
	form.Phone = "310-555-0142"
	_, err = svc.SaveForm(context.Background(), userID, form)
	require.NoError(t, err)

	draft, err := svc.Advance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StepChurchInfo, draft.RegistrationStep)

	_, err = svc.Advance(context.Background(), userID)
	assert.ErrorIs(t, err, ErrChurchInfoIncomplete)
}

func TestBackKeepsEnteredData(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGeocoder{}, &fakeImages{})
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	draft, err := svc.Back(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StepChurchInfo, draft.RegistrationStep)
	assert.Equal(t, "Debre Genet St. Mary", draft.RegistrationForm.Data().Name)

	_, err = svc.Back(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.Back(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAtFirstStep)
}

func TestSubmitValidatesBeforeGeocoding(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{}
	svc := newTestService(store, geo, &fakeImages{})
	userID := uuid.New()

	form := completeForm()
	form.ServiceSchedule = []model.ScheduleEntry{{Day: "Sunday"}} // missing start time
	seedDraft(store, userID, model.StepChurchDetails, form)

	_, err := svc.Submit(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrScheduleRequired)
	assert.Zero(t, geo.calls, "validation failures must not reach the geocoder")
	assert.Empty(t, store.churches)
}

func TestSubmitGeocodeFailureCreatesNothing(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{err: geocode.ErrAddressNotFound}
	svc := newTestService(store, geo, &fakeImages{})
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	_, err := svc.Submit(context.Background(), userID, nil)
	assert.ErrorIs(t, err, geocode.ErrAddressNotFound)
	assert.Empty(t, store.churches)
	assert.Equal(t, model.StepChurchDetails, store.drafts[userID].RegistrationStep)
}

func TestSubmitHappyPath(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34.0522, Lng: -118.2437}}
	images := &fakeImages{}
	svc := newTestService(store, geo, images)
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	church, err := svc.Submit(context.Background(), userID, &UploadedImage{
		Filename: "front.jpg",
		Reader:   strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, churchModel.StatusPending, church.ChurchStatus)
	assert.False(t, church.ChurchIsVerified)
	assert.Equal(t, 0, church.ChurchMembers)
	require.NotNil(t, church.ChurchAdminID)
	assert.Equal(t, userID, *church.ChurchAdminID)
	require.NotNil(t, church.ChurchLatitude)
	assert.InDelta(t, 34.0522, *church.ChurchLatitude, 1e-9)
	assert.Equal(t, "9:00 AM - 11:00 AM", church.ChurchServiceSchedule[0].Time)

	require.Len(t, store.links, 1)
	assert.Equal(t, userID, store.links[0][0])
	assert.Equal(t, "church_admin", store.roles[userID])

	require.Len(t, images.rekeyed, 1)
	assert.Contains(t, church.ChurchImageURL, church.ChurchID.String())

	draft := store.drafts[userID]
	assert.Equal(t, model.StepSubmitted, draft.RegistrationStep)
	require.NotNil(t, draft.RegistrationChurchID)
	assert.Equal(t, church.ChurchID, *draft.RegistrationChurchID)
	assert.Nil(t, draft.RegistrationTempImageKey)
}

func TestSubmitImageRekeyFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34, Lng: -118}}
	images := &fakeImages{rekeyErr: errors.New("bucket unavailable")}
	svc := newTestService(store, geo, images)
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	church, err := svc.Submit(context.Background(), userID, &UploadedImage{
		Filename: "front.jpg",
		Reader:   strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err, "a lost image must not fail the registration")
	assert.Empty(t, church.ChurchImageURL)
	assert.Equal(t, model.StepSubmitted, store.drafts[userID].RegistrationStep)
}

func TestSubmitRetryWithStaleTempKeyAndNoImageStorage(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34, Lng: -118}}
	svc := NewService(store, geo, nil)
	svc.logf = func(string, ...any) {}
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	// A temp key left behind by an earlier attempt that failed after the
	// image upload.
	key := "registration-temp/" + store.drafts[userID].RegistrationID.String() + "/front.jpg"
	store.drafts[userID].RegistrationTempImageKey = &key

	var church *churchModel.ChurchModel
	var err error
	require.NotPanics(t, func() {
		church, err = svc.Submit(context.Background(), userID, nil)
	})
	require.NoError(t, err, "a stale temp key with storage unconfigured degrades like any re-key failure")
	assert.Empty(t, church.ChurchImageURL)
	assert.Equal(t, model.StepSubmitted, store.drafts[userID].RegistrationStep)
}

func TestSubmitImageUploadFailureAborts(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34, Lng: -118}}
	images := &fakeImages{uploadErr: errors.New("bucket unavailable")}
	svc := newTestService(store, geo, images)
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	_, err := svc.Submit(context.Background(), userID, &UploadedImage{
		Filename: "front.jpg",
		Reader:   strings.NewReader("jpeg-bytes"),
	})
	require.Error(t, err)
	assert.Empty(t, store.churches)
	assert.Equal(t, model.StepChurchDetails, store.drafts[userID].RegistrationStep)
}

func TestSubmitLinkFailureLeavesDraftUnsubmitted(t *testing.T) {
	store := newFakeStore()
	store.linkErr = errors.New("permission denied")
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34, Lng: -118}}
	svc := newTestService(store, geo, &fakeImages{})
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	_, err := svc.Submit(context.Background(), userID, nil)
	require.Error(t, err)
	assert.Equal(t, model.StepChurchDetails, store.drafts[userID].RegistrationStep)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: geocode.Result{Lat: 34, Lng: -118}}
	svc := newTestService(store, geo, &fakeImages{})
	userID := uuid.New()
	seedDraft(store, userID, model.StepChurchDetails, completeForm())

	_, err := svc.Submit(context.Background(), userID, nil)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}
