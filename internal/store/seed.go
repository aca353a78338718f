package store

// SeedDemoCalls inserts a few illustrative call records so a fresh
// dashboard is not empty. Demo-only fixture; nothing depends on these
// rows being present.
func (s *MemStore) SeedDemoCalls() {
	now := s.clock()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	s.mu.Lock()
	defer s.mu.Unlock()

	seeds := []CallRecord{
		{
			CallID:    "call_1",
			AgentID:   "agent_1",
			AgentName: "Customer Support Agent",
			Status:    CallStatusCompleted,
			Duration:  "3:42",
			StartTime: now,
			EndTime:   &now,
			Timestamp: "Today at " + now.Format("3:04 PM"),
		},
		{
			CallID:    "call_2",
			AgentID:   "agent_1",
			AgentName: "Customer Support Agent",
			Status:    CallStatusCompleted,
			Duration:  "5:17",
			StartTime: yesterday,
			EndTime:   &yesterday,
			Timestamp: "Yesterday at " + yesterday.Format("3:04 PM"),
		},
		{
			CallID:    "call_3",
			AgentID:   "agent_2",
			AgentName: "Product Expert Agent",
			Status:    CallStatusDropped,
			Duration:  "1:08",
			StartTime: lastWeek,
			EndTime:   &lastWeek,
			Timestamp: lastWeek.Format("Jan 2, 2006"),
		},
	}

	for _, rec := range seeds {
		rec.ID = s.nextRecordID
		s.nextRecordID++
		s.callIndex[rec.CallID] = len(s.callRecords)
		s.callRecords = append(s.callRecords, rec)
	}
}
