package portfolio

// Selection option kinds as they appear in selection payloads.
const (
	OptionTypeProject    = "project"
	OptionTypeExperience = "experience"
)

// SelectionOption describes one entry of the picker the client renders when a turn
// ends with needsSelection.
type SelectionOption struct {
	Type         string `json:"type"`
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Period       string `json:"period"`
	DisplayLabel string `json:"displayLabel"`
}

// TopicForOptionType maps a selection payload type to its topic.
func TopicForOptionType(optionType string) (Topic, bool) {
	switch optionType {
	case OptionTypeProject:
		return TopicProjects, true
	case OptionTypeExperience:
		return TopicExperience, true
	default:
		return "", false
	}
}

// Options enumerates the selectable items for optionType from the summary tables.
// Records without a usable id are skipped.
func (s *Store) Options(optionType string) []SelectionOption {
	topic, ok := TopicForOptionType(optionType)
	if !ok {
		return nil
	}

	records := s.SummaryRecords(topic)
	options := make([]SelectionOption, 0, len(records))
	for _, record := range records {
		id, ok := record.ID()
		if !ok {
			continue
		}

		option := SelectionOption{
			Type:   optionType,
			ID:     id,
			Period: record.String("period"),
		}
		if topic == TopicExperience {
			option.Name = record.String("role")
			option.DisplayLabel = record.String("company") + " - " + option.Name
		} else {
			option.Name = record.String("name")
			option.DisplayLabel = option.Name
		}
		options = append(options, option)
	}
	return options
}

// AllOptions returns experience options followed by project options.
func (s *Store) AllOptions() []SelectionOption {
	return append(s.Options(OptionTypeExperience), s.Options(OptionTypeProject)...)
}
