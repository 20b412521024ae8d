package job

import (
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/util/common"
	"github.com/confetti-cuisine/confetti/web/service"
)

// LinkSubscribersJob attaches users to the subscriber that shares their
// email when one shows up after the account was created.
type LinkSubscribersJob struct {
	userService service.UserService
}

func NewLinkSubscribersJob() *LinkSubscribersJob {
	return new(LinkSubscribersJob)
}

func (j *LinkSubscribersJob) Run() {
	defer common.Recover("link subscribers job")

	n, err := j.userService.LinkSubscribers()
	if err != nil {
		logger.Warning("link subscribers job err:", err)
		return
	}
	if n > 0 {
		logger.Infof("linked %d users to their subscriber record", n)
	}
}
