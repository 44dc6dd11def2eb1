package game

func (a *Actor) handleJoin(req JoinRequest) Reply {
	if _, exists := a.players[req.SessionID]; exists {
		return errReply(ErrUnexpectedMessage)
	}
	if a.phase != PhaseLobby {
		return errReply(ErrNotJoinable)
	}
	if len(req.Name) < 1 || len(req.Name) > 30 {
		return errReply(ErrInvalidNameLength)
	}
	if a.filter != nil && !a.filter.Check(a.cfg.Filtering, req.Name) {
		return errReply(ErrInappropriateName)
	}
	for _, id := range a.order {
		if a.players[id].Name == req.Name {
			return errReply(ErrUsernameTaken)
		}
	}
	if len(a.players) >= a.cfg.MaxPlayers {
		return errReply(ErrCapacityReached)
	}

	p := &Player{ID: req.SessionID, Name: req.Name, session: req.Session}
	a.players[req.SessionID] = p
	a.order = append(a.order, req.SessionID)

	a.broadcastAllExcept(req.SessionID, Event{Type: EventPlayerData, Payload: PlayerDataPayload{ID: p.ID, Name: p.Name}})

	cfg := a.cfg
	return Reply{Kind: ReplyJoined, PlayerID: p.ID, Token: a.token, Config: &cfg}
}

func (a *Actor) handleReady(req ReadyRequest) Reply {
	p, isPlayer := a.players[req.SessionID]
	if !isPlayer {
		return errReply(ErrUnexpectedMessage)
	}
	if a.phase != PhaseAwaitingReady {
		return errReply(ErrUnexpectedMessage)
	}
	p.ready = true

	if a.allNonHostReady() {
		a.cancelTimer()
		a.enterAwaitingAnswers()
	}
	return ok()
}

func (a *Actor) allNonHostReady() bool {
	for _, id := range a.order {
		if !a.players[id].ready {
			return false
		}
	}
	return true
}

func (a *Actor) handleAnswer(req AnswerRequest) Reply {
	p, isPlayer := a.players[req.SessionID]
	if !isPlayer {
		return errReply(ErrUnexpectedMessage)
	}
	if a.phase != PhaseAwaitingAnswers {
		return errReply(ErrUnexpectedMessage)
	}
	if p.answered {
		return errReply(ErrInvalidAnswer)
	}
	q := a.currentQuestion()
	if !req.Answer.Matches(q) {
		return errReply(ErrInvalidAnswer)
	}

	total, elapsed := a.tmr.Sample()
	if elapsed >= total {
		return errReply(ErrInvalidAnswer)
	}

	p.answered = true
	p.answer = req.Answer
	p.answerTMs = int(elapsed.Milliseconds())

	if a.allPlayersAnswered() {
		a.cancelTimer()
		a.enterMarked()
	}
	return ok()
}

func (a *Actor) allPlayersAnswered() bool {
	for _, id := range a.order {
		if !a.players[id].answered {
			return false
		}
	}
	return true
}

func (a *Actor) handleHostAction(req HostActionRequest) Reply {
	if req.SessionID != a.hostID {
		return errReply(ErrInvalidPermission)
	}
	switch req.Action {
	case ActionStart:
		if a.phase != PhaseLobby {
			return errReply(ErrUnexpectedMessage)
		}
		if len(a.players) < 1 {
			return errReply(ErrUnexpected)
		}
		a.enterStarting()
	case ActionCancel:
		if a.phase != PhaseStarting {
			return errReply(ErrUnexpectedMessage)
		}
		a.enterLobby()
	case ActionSkip:
		switch a.phase {
		case PhaseStarting, PhaseAwaitingReady, PhaseAwaitingAnswers, PhaseMarked:
			a.skipTimer()
			a.forceAdvance()
		default:
			return errReply(ErrUnexpectedMessage)
		}
	case ActionNext:
		if a.phase != PhaseMarked {
			return errReply(ErrUnexpectedMessage)
		}
		a.cancelTimer()
		a.advanceAfterMarked()
	case ActionReset:
		if a.phase != PhaseFinished {
			return errReply(ErrUnexpectedMessage)
		}
		a.enterLobby()
	default:
		return errReply(ErrUnexpectedMessage)
	}
	return ok()
}

func (a *Actor) handleKick(req KickRequest, reason KickReason) Reply {
	isSelf := req.SessionID == req.Target
	isHost := req.SessionID == a.hostID
	if !isHost && !isSelf {
		return errReply(ErrInvalidPermission)
	}

	if req.Target == a.hostID {
		a.terminate(ReasonHostDisconnect, true)
		return ok()
	}

	p, exists := a.players[req.Target]
	if !exists {
		return errReply(ErrUnknownPlayer)
	}
	a.removePlayer(req.Target)

	r := reason
	if isSelf {
		r = ReasonSelf
	}
	if p.session != nil {
		p.session.Deliver(Event{Type: EventKicked, Payload: KickedPayload{ID: req.Target, Reason: r}})
	}
	a.broadcastAllExcept(req.Target, Event{Type: EventKicked, Payload: KickedPayload{ID: req.Target, Reason: r}})
	return ok()
}

func (a *Actor) handleDisconnected(msg SessionDisconnected) {
	reason := ReasonDisconnected
	if msg.Abrupt {
		reason = ReasonLostConnection
	}

	if msg.SessionID == a.hostID {
		a.terminate(ReasonHostDisconnect, true)
		return
	}

	if _, exists := a.players[msg.SessionID]; !exists {
		return
	}
	a.removePlayer(msg.SessionID)
	a.broadcastAllExcept(msg.SessionID, Event{Type: EventKicked, Payload: KickedPayload{ID: msg.SessionID, Reason: reason}})
}

func (a *Actor) removePlayer(id int64) {
	delete(a.players, id)
	for i, existing := range a.order {
		if existing == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *Actor) handleImageRequest(req ImageRequest) ImageReply {
	img, ok := a.images[req.UUID]
	if !ok {
		return ImageReply{Found: false}
	}
	return ImageReply{Found: true, Bytes: img.Bytes, ContentType: img.ContentType}
}
