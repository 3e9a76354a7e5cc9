package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/botobag/artemis/graphql"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
)

const (
	createAna = `mutation {
		createDoctor(name: "Ana", email: "ana@x.com", specialty: CARDIOLOGY) { id name email specialty }
	}`
	createLeo = `mutation {
		createPatient(name: "Leo", email: "leo@x.com", age: 5) { id name email age }
	}`
	createAppointment = `mutation($date: String!, $doctorId: ID!, $patientId: ID!, $duration: Int) {
		createAppointment(date: $date, doctorId: $doctorId, patientId: $patientId, duration: $duration) {
			id date duration notes reason
			doctor { name }
			patient { name }
		}
	}`
	listAppointments = `{
		appointments { id date duration doctor { id name specialty } patient { id name age } }
	}`
)

var _ = Describe("Clinic GraphQL API", func() {
	var ts *testServer

	BeforeEach(func() {
		ts = newTestServer(store.Options{UniqueDoctorEmail: true})
	})

	AfterEach(func() {
		ts.Close()
	})

	Describe("doctors", func() {
		It("lists a created doctor with exactly its fields", func() {
			id := ID(ts.MustDo(createAna, nil), "createDoctor")

			data := ts.MustDo(`{ doctors { id name email specialty } }`, nil)
			Expect(data["doctors"]).Should(ConsistOf(map[string]interface{}{
				"id":        id,
				"name":      "Ana",
				"email":     "ana@x.com",
				"specialty": "CARDIOLOGY",
			}))
		})

		It("rejects a second doctor with the same email", func() {
			ts.MustDo(createAna, nil)

			resp := ts.Do(`mutation {
				createDoctor(name: "Eva", email: "ana@x.com", specialty: PEDIATRICS) { id }
			}`, nil)
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Doctor with this email already exists"}))
		})

		It("rejects an empty name", func() {
			resp := ts.Do(`mutation {
				createDoctor(name: "", email: "ana@x.com", specialty: CARDIOLOGY) { id }
			}`, nil)
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Missing required field"}))

			Expect(ts.MustDo(`{ doctors { id } }`, nil)["doctors"]).Should(BeEmpty())
		})

		It("filters by specialty", func() {
			ts.MustDo(createAna, nil)
			ts.MustDo(`mutation { createDoctor(name: "Eva", email: "eva@x.com", specialty: PEDIATRICS) { id } }`, nil)

			data := ts.MustDo(`{ doctorsBySpecialty(specialty: PEDIATRICS) { name } }`, nil)
			Expect(data).Should(Equal(map[string]interface{}{
				"doctorsBySpecialty": []interface{}{map[string]interface{}{"name": "Eva"}},
			}))
		})

		It("updates only the supplied fields", func() {
			id := ID(ts.MustDo(createAna, nil), "createDoctor")

			data := ts.MustDo(`mutation($id: ID!) {
				updateDoctor(id: $id, specialty: PEDIATRICS) { name email specialty }
			}`, map[string]interface{}{"id": id})
			Expect(data["updateDoctor"]).Should(Equal(map[string]interface{}{
				"name":      "Ana",
				"email":     "ana@x.com",
				"specialty": "PEDIATRICS",
			}))
		})

		It("reports an unknown doctor on update", func() {
			resp := ts.Do(`mutation { updateDoctor(id: "missing", name: "X") { id } }`, nil)
			Expect(resp.Data).Should(HaveKeyWithValue("updateDoctor", BeNil()))
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Doctor not found"}))
		})

		It("deletes exactly once", func() {
			id := ID(ts.MustDo(createAna, nil), "createDoctor")
			del := `mutation($id: ID!) { deleteDoctor(id: $id) }`

			Expect(ts.MustDo(del, map[string]interface{}{"id": id})).Should(HaveKeyWithValue("deleteDoctor", true))
			Expect(ts.MustDo(del, map[string]interface{}{"id": id})).Should(HaveKeyWithValue("deleteDoctor", false))
		})
	})

	Describe("patients", func() {
		It("accepts Int arguments sent as JSON variables", func() {
			data := ts.MustDo(`mutation($age: Int!) {
				createPatient(name: "Leo", email: "leo@x.com", age: $age) { name age }
			}`, map[string]interface{}{"age": 5})
			Expect(data["createPatient"]).Should(Equal(map[string]interface{}{
				"name": "Leo",
				"age":  float64(5),
			}))

			data = ts.MustDo(`query($lo: Int, $hi: Int) { patientsByAge(minAge: $lo, maxAge: $hi) { name } }`,
				map[string]interface{}{"lo": 5, "hi": 5})
			Expect(data["patientsByAge"]).Should(HaveLen(1))
		})

		It("rejects a fractional Int variable", func() {
			resp := ts.Do(`mutation($age: Int!) {
				createPatient(name: "Leo", email: "leo@x.com", age: $age) { id }
			}`, map[string]interface{}{"age": 5.5})
			Expect(resp.Errors).ShouldNot(BeEmpty())
			Expect(ts.MustDo(`{ patients { id } }`, nil)["patients"]).Should(BeEmpty())
		})

		It("updates only the supplied fields", func() {
			id := ID(ts.MustDo(createLeo, nil), "createPatient")

			data := ts.MustDo(`mutation($id: ID!, $age: Int) {
				updatePatient(id: $id, age: $age) { name email age }
			}`, map[string]interface{}{"id": id, "age": 6})
			Expect(data["updatePatient"]).Should(Equal(map[string]interface{}{
				"name":  "Leo",
				"email": "leo@x.com",
				"age":   float64(6),
			}))
		})

		It("allows patients to share an email", func() {
			ts.MustDo(createLeo, nil)
			ts.MustDo(createLeo, nil)

			Expect(ts.MustDo(`{ patients { id } }`, nil)["patients"]).Should(HaveLen(2))
		})

		It("filters by an inclusive age range", func() {
			for i, age := range []int{41, 30, 29, 40, 35} {
				ts.MustDo(`mutation($name: String!, $age: Int!) {
					createPatient(name: $name, email: "p@x.com", age: $age) { id }
				}`, map[string]interface{}{"name": string(rune('A' + i)), "age": age})
			}

			ages := func(query string) []interface{} {
				var out []interface{}
				for _, p := range ts.MustDo(query, nil)["patientsByAge"].([]interface{}) {
					out = append(out, p.(map[string]interface{})["age"])
				}
				return out
			}
			Expect(ages(`{ patientsByAge(minAge: 30, maxAge: 40) { age } }`)).
				Should(ConsistOf(float64(30), float64(40), float64(35)))
			Expect(ages(`{ patientsByAge(minAge: 40) { age } }`)).
				Should(ConsistOf(float64(41), float64(40)))
			Expect(ages(`{ patientsByAge { age } }`)).Should(HaveLen(5))
			Expect(ages(`{ patientsByAge(minAge: null, maxAge: 29) { age } }`)).
				Should(ConsistOf(float64(29)))
		})
	})

	Describe("appointments", func() {
		var anaID, leoID string

		BeforeEach(func() {
			anaID = ID(ts.MustDo(createAna, nil), "createDoctor")
			leoID = ID(ts.MustDo(createLeo, nil), "createPatient")
		})

		book := func(date string) string {
			return ID(ts.MustDo(createAppointment, map[string]interface{}{
				"date": date, "doctorId": anaID, "patientId": leoID, "duration": 30,
			}), "createAppointment")
		}

		It("joins the doctor and the patient", func() {
			data := ts.MustDo(createAppointment, map[string]interface{}{
				"date": "2024-01-01T10:00:00Z", "doctorId": anaID, "patientId": leoID, "duration": 30,
			})
			Expect(data["createAppointment"]).Should(MatchKeys(IgnoreExtras, Keys{
				"id":       Not(BeEmpty()),
				"date":     Equal("2024-01-01T10:00:00.000Z"),
				"duration": Equal(float64(30)),
				"notes":    BeNil(),
				"reason":   BeNil(),
				"doctor":   Equal(map[string]interface{}{"name": "Ana"}),
				"patient":  Equal(map[string]interface{}{"name": "Leo"}),
			}))

			list := ts.MustDo(listAppointments, nil)["appointments"].([]interface{})
			Expect(list).Should(HaveLen(1))
			a := list[0].(map[string]interface{})
			Expect(a["doctor"]).Should(HaveKeyWithValue("name", "Ana"))
			Expect(a["patient"]).Should(HaveKeyWithValue("name", "Leo"))
			Expect(a["duration"]).Should(Equal(float64(30)))
		})

		It("loads every referenced doctor and patient in one batch", func() {
			book("2024-01-01")
			book("2024-01-02")
			book("2024-01-03")
			ts.store.resetCounts()

			Expect(ts.MustDo(listAppointments, nil)["appointments"]).Should(HaveLen(3))
			Expect(ts.store.doctorBatches).Should(BeEquivalentTo(1))
			Expect(ts.store.patientBatches).Should(BeEquivalentTo(1))
		})

		It("creates nothing for an unknown doctor", func() {
			resp := ts.Do(createAppointment, map[string]interface{}{
				"date": "2024-01-01", "doctorId": "ghost", "patientId": leoID,
			})
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Doctor not found"}))
			Expect(ts.MustDo(listAppointments, nil)["appointments"]).Should(BeEmpty())
		})

		It("checks the patient before the date", func() {
			resp := ts.Do(createAppointment, map[string]interface{}{
				"date": "", "doctorId": anaID, "patientId": "ghost",
			})
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Patient not found"}))

			resp = ts.Do(createAppointment, map[string]interface{}{
				"date": "next tuesday", "doctorId": anaID, "patientId": leoID,
			})
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Invalid date"}))
		})

		It("keeps the patient when the new one does not exist", func() {
			id := book("2024-01-01T10:00:00Z")

			resp := ts.Do(`mutation($id: ID!) {
				updateAppointment(id: $id, patientId: "ghost") { id }
			}`, map[string]interface{}{"id": id})
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Patient not found"}))

			data := ts.MustDo(`query($p: ID!) { appointmentsByPatient(patientId: $p) { id patient { name } } }`,
				map[string]interface{}{"p": leoID})
			Expect(data["appointmentsByPatient"]).Should(ConsistOf(map[string]interface{}{
				"id":      id,
				"patient": map[string]interface{}{"name": "Leo"},
			}))
		})

		It("swaps the doctor and clears an optional field with null", func() {
			id := book("2024-01-01T10:00:00Z")
			evaID := ID(ts.MustDo(`mutation {
				createDoctor(name: "Eva", email: "eva@x.com", specialty: DERMATOLOGY) { id }
			}`, nil), "createDoctor")

			data := ts.MustDo(`mutation($id: ID!, $doctorId: ID) {
				updateAppointment(id: $id, doctorId: $doctorId, duration: null, notes: "fasting") {
					duration notes doctor { name }
				}
			}`, map[string]interface{}{"id": id, "doctorId": evaID})
			Expect(data["updateAppointment"]).Should(Equal(map[string]interface{}{
				"duration": nil,
				"notes":    "fasting",
				"doctor":   map[string]interface{}{"name": "Eva"},
			}))

			data = ts.MustDo(`query($d: ID!) { appointmentsByDoctor(doctorId: $d) { id } }`,
				map[string]interface{}{"d": anaID})
			Expect(data["appointmentsByDoctor"]).Should(BeEmpty())
		})

		It("reports a deleted doctor as a null reference", func() {
			book("2024-01-01")
			ts.MustDo(`mutation($id: ID!) { deleteDoctor(id: $id) }`, map[string]interface{}{"id": anaID})

			resp := ts.Do(`{ appointments { id doctor { name } } }`, nil)
			Expect(resp.Errors).Should(ConsistOf(gqlError{
				Message: "Cannot return null for non-nullable field Appointment.doctor.",
			}))

			data := ts.MustDo(`{ appointments { patient { name } } }`, nil)
			Expect(data["appointments"]).Should(HaveLen(1))
		})

		It("deletes exactly once", func() {
			id := book("2024-01-01")
			del := `mutation($id: ID!) { deleteAppointment(id: $id) }`

			Expect(ts.MustDo(del, map[string]interface{}{"id": id})).Should(HaveKeyWithValue("deleteAppointment", true))
			Expect(ts.MustDo(del, map[string]interface{}{"id": id})).Should(HaveKeyWithValue("deleteAppointment", false))
		})
	})

	Describe("transport", func() {
		It("passes Int variables of GET requests through", func() {
			ts.MustDo(createLeo, nil)

			r := httptest.NewRequest(http.MethodGet,
				"/graphql?query="+url.QueryEscape(`query($a: Int){ patientsByAge(minAge: $a) { name } }`)+
					"&variables="+url.QueryEscape(`{"a":5}`), nil)
			resp := ts.serve(r)
			Expect(resp.Status).Should(Equal(http.StatusOK))
			Expect(resp.Body).Should(MatchJSON(`{"data":{"patientsByAge":[{"name":"Leo"}]}}`))
		})

		It("answers GET requests", func() {
			ts.MustDo(createAna, nil)

			r := httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bdoctors%7Bname%7D%7D", nil)
			resp := ts.serve(r)
			Expect(resp.Status).Should(Equal(http.StatusOK))
			Expect(resp.Body).Should(MatchJSON(`{"data":{"doctors":[{"name":"Ana"}]}}`))
		})

		It("rejects a request without a query", func() {
			r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
			r.Header.Set("Content-Type", "application/json")

			resp := ts.serve(r)
			Expect(resp.Status).Should(Equal(http.StatusBadRequest))
			Expect(resp.Errors).Should(ConsistOf(gqlError{Message: "Must provide query string."}))
		})

		It("rejects a query that does not validate", func() {
			resp := ts.Do(`{ doctors { age } }`, nil)
			Expect(resp.Status).Should(Equal(http.StatusBadRequest))
			Expect(resp.Errors).ShouldNot(BeEmpty())
		})

		It("rejects a malformed body", func() {
			r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":`))
			r.Header.Set("Content-Type", "application/json")

			resp := ts.serve(r)
			Expect(resp.Status).Should(Equal(http.StatusBadRequest))
			Expect(resp.Errors).Should(HaveLen(1))
			Expect(resp.Errors[0].Message).Should(HavePrefix("Invalid request"))
		})

		It("exposes Person through introspection", func() {
			data := ts.MustDo(`{ __type(name: "Person") { kind possibleTypes { name } } }`, nil)
			Expect(data["__type"]).Should(MatchAllKeys(Keys{
				"kind": Equal("INTERFACE"),
				"possibleTypes": ConsistOf(
					map[string]interface{}{"name": "Doctor"},
					map[string]interface{}{"name": "Patient"},
				),
			}))
		})
	})
})

var _ = Describe("Person type resolution", func() {
	var doctor, patient graphql.Object

	BeforeEach(func() {
		t, err := newTypes()
		Expect(err).ShouldNot(HaveOccurred())
		doctor, patient = t.doctor, t.patient
	})

	It("dispatches on the concrete model", func() {
		Expect(resolvePersonType(&models.Doctor{}, doctor, patient)).Should(Equal(doctor))
		Expect(resolvePersonType(&models.Patient{}, doctor, patient)).Should(Equal(patient))
	})

	It("dispatches tagged persons on their kind", func() {
		d := &models.Doctor{ID: "d1", Name: "Ana", Specialty: models.SpecialtyCardiology}
		p := &models.Patient{ID: "p1", Name: "Leo", Age: 5}

		Expect(resolvePersonType(d.Person(), doctor, patient)).Should(Equal(doctor))
		Expect(resolvePersonType(p.Person(), doctor, patient)).Should(Equal(patient))
	})

	It("fails for anything else", func() {
		_, err := resolvePersonType(models.Person{}, doctor, patient)
		Expect(err).Should(HaveOccurred())

		_, err = resolvePersonType("Ana", doctor, patient)
		Expect(err).Should(MatchError("value of type string is not a Person"))
	})

	It("resolves shared fields for both variants", func() {
		resolve := personResolver("name")
		for _, source := range []interface{}{
			&models.Doctor{Name: "Ana"},
			models.Person{Kind: models.PersonKindDoctor, Doctor: &models.Doctor{Name: "Ana"}},
		} {
			v, err := resolve.Resolve(context.Background(), source, nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(v).Should(Equal("Ana"))
		}
	})
})
