package model

import (
	"fmt"
	"strings"
)

// Fixture sizes loaded by PopulateTables.
const (
	FixtureUserCount      = 25
	FixtureMessageCount   = 19
	FixtureDiagnosisCount = 10
)

const fixtureEpoch int64 = 1362015937

type userFixture struct {
	nickname   string
	role       string
	firstname  string
	lastname   string
	gender     string
	age        int
	speciality string
}

// Indexed by user id - 1.
var userFixtures = []userFixture{
	{"Mystery", RolePatient, "Mikko", "Virtanen", "male", 34, ""},
	{"AxelW", RolePatient, "Axel", "Wikström", "male", 27, ""},
	{"Kalle", RolePatient, "Kalle", "Korhonen", "male", 45, ""},
	{"Dr.House", RoleDoctor, "Gregory", "House", "male", 52, "Diagnostic medicine"},
	{"Dr.Grey", RoleDoctor, "Meredith", "Grey", "female", 38, "General surgery"},
	{"Dr.Strange", RoleDoctor, "Stephen", "Strange", "male", 44, "Neurosurgery"},
	{"Koala", RolePatient, "Aino", "Mäkinen", "female", 22, ""},
	{"Dr.Quinn", RoleDoctor, "Michaela", "Quinn", "female", 41, "Family medicine"},
	{"Paavo", RolePatient, "Paavo", "Nieminen", "male", 63, ""},
	{"Liisa", RolePatient, "Liisa", "Heikkinen", "female", 31, ""},
	{"Dr.Watson", RoleDoctor, "John", "Watson", "male", 47, "Internal medicine"},
	{"Ninja", RolePatient, "Jenni", "Koskinen", "female", 19, ""},
	{"Ilkka", RolePatient, "Ilkka", "Järvinen", "male", 56, ""},
	{"Dr.Who", RoleDoctor, "John", "Smith", "male", 50, "Emergency medicine"},
	{"Sanna", RolePatient, "Sanna", "Lehtonen", "female", 29, ""},
	{"Jussi", RolePatient, "Jussi", "Lehtinen", "male", 38, ""},
	{"Dr.Zhivago", RoleDoctor, "Yuri", "Zhivago", "male", 39, "Pulmonology"},
	{"Tiina", RolePatient, "Tiina", "Saarinen", "female", 42, ""},
	{"Matti", RolePatient, "Matti", "Salminen", "male", 71, ""},
	{"Dr.Dolittle", RoleDoctor, "John", "Dolittle", "male", 58, "Dermatology"},
	{"Emma", RolePatient, "Emma", "Niemi", "female", 25, ""},
	{"Oskari", RolePatient, "Oskari", "Heinonen", "male", 33, ""},
	{"Dr.Carter", RoleDoctor, "John", "Carter", "male", 36, "Otolaryngology"},
	{"Helmi", RolePatient, "Helmi", "Hämäläinen", "female", 67, ""},
	{"Veikko", RolePatient, "Veikko", "Laine", "male", 49, ""},
}

type messageFixture struct {
	userID  uint
	replyTo uint
	title   string
	body    string
}

// Indexed by message id - 1.
var messageFixtures = []messageFixture{
	{1, 0, "Soreness in the throat", "Hi, I have this soreness in my throat. It started just yesterday and its getting worse by the hour."},
	{2, 0, "Headache after running", "Every time I go running I get a strong headache on the left side."},
	{3, 0, "Itchy rash on the arm", "A red rash appeared on my left arm two days ago and it itches a lot."},
	{7, 0, "Dizziness when standing up", "I feel dizzy whenever I stand up quickly, sometimes my vision goes dark."},
	{9, 0, "Knee pain", "My right knee hurts when climbing stairs, especially in the morning."},
	{10, 0, "Persistent cough", "I have had a dry cough for three weeks now and it does not go away."},
	{12, 0, "Trouble sleeping", "I wake up several times every night and feel exhausted during the day."},
	{13, 0, "Chest tightness", "Sometimes I feel tightness in my chest after climbing stairs."},
	{15, 0, "Ear ache", "My left ear has been aching since I went swimming last weekend."},
	{16, 0, "Stomach cramps", "I get stomach cramps after almost every meal."},
	{4, 1, "Re: Soreness in the throat", "Do you have any fever? Please also check for white spots on your tonsils."},
	{1, 11, "Re: Soreness in the throat", "Yes, I have a mild fever and there are a few white spots."},
	{5, 2, "Re: Headache after running", "Make sure you drink enough water before and after running."},
	{6, 4, "Re: Dizziness when standing up", "That sounds like orthostatic hypotension. How is your blood pressure?"},
	{18, 0, "Blurry vision", "My vision gets blurry in the evenings when reading."},
	{19, 0, "Back pain", "My lower back hurts after working in the garden."},
	{8, 6, "Re: Persistent cough", "Do you smoke? A cough lasting over three weeks should be examined."},
	{21, 0, "Allergy season", "My eyes are watering and I sneeze all the time this spring."},
	{22, 0, "Numb fingers", "Two fingers on my right hand feel numb after cycling."},
}

type diagnosisFixture struct {
	userID      uint
	messageID   uint
	disease     string
	description string
}

// Indexed by diagnosis id - 1.
var diagnosisFixtures = []diagnosisFixture{
	{4, 1, "Streptococcal pharyngitis", "Fever and white spots on the tonsils point to a bacterial throat infection."},
	{5, 2, "Exercise-induced headache", "Headache triggered by exertion, likely related to dehydration."},
	{20, 3, "Contact dermatitis", "Local skin reaction, most likely caused by an irritant."},
	{6, 4, "Orthostatic hypotension", "Drop in blood pressure when standing up causes dizziness."},
	{8, 5, "Patellofemoral pain syndrome", "Pain around the kneecap when loading the joint."},
	{17, 6, "Chronic bronchitis", "Long lasting cough that needs further examination."},
	{11, 7, "Insomnia", "Frequent awakenings during the night with daytime fatigue."},
	{14, 8, "Angina pectoris", "Chest tightness under exertion, cardiac evaluation recommended."},
	{23, 9, "Otitis externa", "Inflammation of the ear canal after swimming."},
	{11, 10, "Irritable bowel syndrome", "Cramps after meals without other alarming symptoms."},
}

func fixtureUsers() []User {
	users := make([]User, 0, len(userFixtures))
	for i, f := range userFixtures {
		users = append(users, User{
			ID:               uint(i + 1),
			Nickname:         f.nickname,
			Role:             f.role,
			RegistrationDate: fixtureEpoch + int64(i)*86400,
			LastLogin:        fixtureEpoch + int64(i)*86400 + 3600,
		})
	}
	return users
}

func fixtureProfiles() []UserProfile {
	profiles := make([]UserProfile, 0, len(userFixtures))
	for i, f := range userFixtures {
		profiles = append(profiles, UserProfile{
			UserID:     uint(i + 1),
			Firstname:  f.firstname,
			Lastname:   f.lastname,
			Email:      strings.ToLower(f.nickname) + "@medicalforum.example",
			Gender:     f.gender,
			Age:        f.age,
			Phone:      fmt.Sprintf("+358 40 000 %04d", i+1),
			Speciality: f.speciality,
		})
	}
	return profiles
}

func fixtureMessages() []Message {
	messages := make([]Message, 0, len(messageFixtures))
	for i, f := range messageFixtures {
		m := Message{
			ID:        uint(i + 1),
			Title:     f.title,
			Body:      f.body,
			Timestamp: fixtureEpoch + int64(i)*3600,
			UserID:    f.userID,
		}
		if f.replyTo != 0 {
			replyTo := f.replyTo
			m.ReplyTo = &replyTo
		}
		messages = append(messages, m)
	}
	return messages
}

func fixtureDiagnoses() []Diagnosis {
	diagnoses := make([]Diagnosis, 0, len(diagnosisFixtures))
	for i, f := range diagnosisFixtures {
		diagnoses = append(diagnoses, Diagnosis{
			ID:                   uint(i + 1),
			UserID:               f.userID,
			MessageID:            f.messageID,
			Disease:              f.disease,
			DiagnosisDescription: f.description,
		})
	}
	return diagnoses
}
