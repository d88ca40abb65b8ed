package config

import "strings"

const (
	BotError = "Da ist etwas schiefgelaufen. Bitte versuche es später noch einmal."

	Start = "Servus! Ich bin der Bayernnotenmeister. Trag deine Noten ein und ich rechne dir " +
		"Fach- und Gesamtschnitt nach bayerischer Formel aus. Alle Befehle: /help."

	StartError = "Die Registrierung hat nicht geklappt. Bitte sende /start noch einmal."

	Help = "/name Name – Name für Exporte festlegen;\n" +
		"/fach Name [haupt|neben] – Fach anlegen;\n" +
		"/faecher – Fächer mit Schnitt anzeigen;\n" +
		"/loeschefach Nr – Fach löschen;\n" +
		"/note FachNr Typ Note [Gewicht] [Beschreibung] – Note eintragen (Typen: SA, Ex, MÜ, M, E);\n" +
		"/noten FachNr – Noten eines Fachs anzeigen;\n" +
		"/loeschenote FachNr NotenNr – Note löschen;\n" +
		"/schnitt – Gesamtübersicht;\n" +
		"/ziel FachNr Zielnote TT.MM.JJJJ Titel – Ziel anlegen;\n" +
		"/ziele – Ziele anzeigen;\n" +
		"/loescheziel Nr – Ziel löschen;\n" +
		"/erfolge – Erfolge anzeigen;\n" +
		"/export json|csv|html|pdf – Notenübersicht exportieren;\n" +
		"/token – Zugangsschlüssel für die Web-App;\n" +
		"/gh – GitHub-Repository."

	Github = "GitHub-Repository des Bots: [Link](github.com/ilyadubrovsky/notenmeister)."

	Default = "Den Befehl kenne ich nicht. Alle Befehle: /help."

	NotRegistered = "Bitte sende zuerst /start."

	NameNoEntered = "Bitte gib deinen Namen an: /name Max Mustermann"
	NameSaved     = "Dein Name für Exporte ist jetzt *%s*."

	SubjectNoEntered   = "Bitte gib den Fachnamen an: /fach Mathematik"
	SubjectCreated     = "Fach *%s* angelegt (%s)."
	SubjectExists      = "Das Fach gibt es schon."
	SubjectNotFound    = "Ein Fach mit dieser Nummer gibt es nicht. Schau in /faecher nach."
	SubjectDeleted     = "Fach *%s* gelöscht."
	SubjectsEmpty      = "Du hast noch keine Fächer. Lege eins mit /fach an."
	SubjectKindInvalid = "Fachart unbekannt: bitte *haupt* oder *neben* angeben."

	GradeFormIgnored = "So geht's: /note FachNr Typ Note [Gewicht] [Beschreibung], z.B. /note 1 SA 2"
	GradeTypeInvalid = "Unbekannter Notentyp. Erlaubt sind SA, Ex, MÜ, M und E."
	GradeInvalid     = "Die Note muss zwischen 1 und 6 liegen, das Gewicht muss größer als 0 und höchstens 10 sein."
	GradeAdded       = "Note %s (%s) in *%s* eingetragen. Neuer Fachschnitt: *%s*"
	GradeNotFound    = "Eine Note mit dieser Nummer gibt es nicht. Schau in /noten nach."
	GradeDeleted     = "Note gelöscht. Neuer Fachschnitt: *%s*"
	GradesEmpty      = "In *%s* sind noch keine Noten eingetragen."

	SummaryEmpty = "Noch keine Noten eingetragen. Los geht's mit /note."

	GoalFormIgnored = "So geht's: /ziel FachNr Zielnote TT.MM.JJJJ Titel, z.B. /ziel 1 2,0 31.07.2025 Bessere Note in Mathe"
	GoalInvalid     = "Die Zielnote muss zwischen 1 und 6 liegen und der Titel darf höchstens 120 Zeichen haben."
	GoalCreated     = "Ziel *%s* angelegt."
	GoalNotFound    = "Ein Ziel mit dieser Nummer gibt es nicht. Schau in /ziele nach."
	GoalDeleted     = "Ziel gelöscht."
	GoalsEmpty      = "Du hast noch keine Ziele. Lege eins mit /ziel an."
	GoalReminder    = "Erinnerung: Dein Ziel *%s* in %s ist %s fällig. Zielnote %s, aktuell %s."

	AchievementUnlocked = "🏆 Erfolg freigeschaltet: *%s* – %s"

	ExportFormIgnored = "So geht's: /export json, /export csv, /export html oder /export pdf"

	TokenIssued = "Dein Zugangsschlüssel für die Web-App (gültig bis %s):\n`%s`"
)

var markdownReplacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// Escape makes user input safe to put into the Markdown answers above.
func Escape(s string) string {
	return markdownReplacer.Replace(s)
}
